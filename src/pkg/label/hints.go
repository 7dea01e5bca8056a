package label

import (
	"regexp"
	"strings"
)

/*
HintBundle holds keyword-anchored line windows extracted from the combined
OCR text, used to bias model prompts and regex searches. Purely a read-only
view; Lines is the full split line list.
*/
type HintBundle struct {
	Mfg     []string `json:"mfg"`
	Exp     []string `json:"exp"`
	Batch   []string `json:"batch"`
	Price   []string `json:"price"`
	License []string `json:"license"`
	Lines   []string `json:"_lines"`
}

// maxHintsPerFamily caps each family so one noisy scan cannot flood the prompt.
const maxHintsPerFamily = 10

// Keyword families, each with bilingual (Latin + Devanagari) variants. The
// Devanagari terms cover Nepali label print: उत्पादन (manufacture), म्याद
// (expiry), ब्याच (batch), मूल्य / रु (price), इजाजत (license).
// \b is ASCII-only in Go regexp, so the Devanagari alternatives sit outside
// the boundary assertion.
var (
	mfgKeywords     = regexp.MustCompile(`(?i)\b(?:mfg|mfd|manufactur\w*)|उत्पादन`)
	expKeywords     = regexp.MustCompile(`(?i)\b(?:exp|expiry|use before|best before)|म्याद`)
	batchKeywords   = regexp.MustCompile(`(?i)\b(?:batch|b\.? ?no|lot)|ब्याच`)
	priceKeywords   = regexp.MustCompile(`(?i)\b(?:mrp|m\.?r\.?p|price|rs\.?|npr)|मूल्य|रु`)
	licenseKeywords = regexp.MustCompile(`(?i)\b(?:lic|licen[cs]e|regd|dda ?no)|इजाजत`)
)

/*
BuildHints scans the concatenated OCR text for label keyword families and
captures a window (the matching line plus its next neighbor) per match.

Windows are deduplicated preserving first-seen order and capped at
maxHintsPerFamily per family. Pure function, no I/O.
*/
func BuildHints(ocrText string) *HintBundle {
	lines := splitNonEmptyLines(ocrText)

	return &HintBundle{
		Mfg:     collectWindows(lines, mfgKeywords),
		Exp:     collectWindows(lines, expKeywords),
		Batch:   collectWindows(lines, batchKeywords),
		Price:   collectWindows(lines, priceKeywords),
		License: collectWindows(lines, licenseKeywords),
		Lines:   lines,
	}
}

func splitNonEmptyLines(text string) []string {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		line := strings.TrimSpace(rawLine)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func collectWindows(lines []string, keywords *regexp.Regexp) []string {
	var windows []string
	seen := map[string]bool{}

	for index, line := range lines {
		if !keywords.MatchString(line) {
			continue
		}

		window := line
		if index+1 < len(lines) {
			window = line + " | " + lines[index+1]
		}

		if seen[window] {
			continue
		}
		seen[window] = true
		windows = append(windows, window)

		if len(windows) >= maxHintsPerFamily {
			break
		}
	}

	return windows
}

/*
PromptBlock renders the bundle as a compact block for embedding into a model
prompt. Empty families are omitted.
*/
func (h *HintBundle) PromptBlock() string {
	if h == nil {
		return ""
	}

	var builder strings.Builder
	appendFamily := func(name string, windows []string) {
		if len(windows) == 0 {
			return
		}
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(strings.Join(windows, " ;; "))
		builder.WriteString("\n")
	}

	appendFamily("MFG HINTS", h.Mfg)
	appendFamily("EXP HINTS", h.Exp)
	appendFamily("BATCH HINTS", h.Batch)
	appendFamily("PRICE HINTS", h.Price)
	appendFamily("LICENSE HINTS", h.License)

	return builder.String()
}
