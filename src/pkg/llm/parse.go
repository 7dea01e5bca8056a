package llm

import (
	"encoding/json"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"pharmacy-tracker/src/pkg/label"
)

/*
ParseCandidateJSON turns raw model response text into a CandidateRecord.

Models occasionally wrap the JSON in Markdown code fences or leading prose
despite the schema contract, so parsing is tolerant:

 1. strip ``` fences if present,
 2. try a straight unmarshal,
 3. failing that, locate the outermost {...} span and parse that.

Any parse failure yields nil ("model unavailable"), never an error — the
pipeline degrades to the next tier instead of crashing on a malformed
response.
*/
func ParseCandidateJSON(responseText string) *label.CandidateRecord {
	cleaned := stripCodeFences(responseText)
	if cleaned == "" {
		return nil
	}

	var record label.CandidateRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err == nil {
		return &record
	}

	salvaged := outermostObject(cleaned)
	if salvaged == "" {
		tl.Log(tl.Warning, palette.YellowDim, "Model response is %s, treating tier as unavailable", "not parseable JSON")
		return nil
	}

	if err := json.Unmarshal([]byte(salvaged), &record); err != nil {
		tl.Log(tl.Warning, palette.YellowDim, "Salvaged JSON span still failed to parse: '%s'", err)
		return nil
	}
	return &record
}

func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// outermostObject returns the widest {...} span in the text, or "".
func outermostObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
