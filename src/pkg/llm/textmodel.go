package llm

import (
	"context"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"pharmacy-tracker/src/pkg/label"
	"pharmacy-tracker/src/pkg/openai"
)

/*
TextModelExtractor is the fallback tier: it runs only when vision was
unavailable or insufficient, feeding the combined OCR text plus keyword
hints to a text-only model under the same schema contract.
*/
type TextModelExtractor struct {
	Model string // e.g. "gpt-4o-mini"
}

// Extract implements label.Extractor with the same tolerant-failure
// contract as the vision tier: nil on any network or parse failure.
func (x *TextModelExtractor) Extract(_ context.Context, input label.ExtractorInput) *label.CandidateRecord {
	if strings.TrimSpace(input.OcrText) == "" {
		tl.Log(tl.Info, palette.PurpleDim, "No OCR text, %s tier skipped", "text-model")
		return nil
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s with %s model '%s'",
		"Extracting label via OCR text", "OpenAI", x.Model,
	)

	var userTextBuilder strings.Builder
	userTextBuilder.WriteString("Below is noisy OCR text from photographs of one medicine package, ")
	userTextBuilder.WriteString("preceded by keyword-anchored hint lines.\n")
	userTextBuilder.WriteString("Extract only what the text supports; the batch code must match ^[A-Z]{2,5} \\d{4,6}$ after normalization.\n\n")

	if hints := input.Hints.PromptBlock(); hints != "" {
		userTextBuilder.WriteString("HINTS:\n")
		userTextBuilder.WriteString(hints)
		userTextBuilder.WriteString("\n")
	}

	userTextBuilder.WriteString("=== OCR TEXT START ===\n")
	userTextBuilder.WriteString(input.OcrText)
	userTextBuilder.WriteString("\n=== OCR TEXT END ===\n")

	responseText, meta, e := openai.RequestStructuredText(
		x.Model,
		extractionInstructions,
		extractionDeveloperMessage,
		userTextBuilder.String(),
		CandidateSchemaProperties(),
		2048,
	)
	if e != nil {
		tl.Log(tl.Warning, palette.PurpleDim, "Text model call failed, tier unavailable: '%s'", e)
		return nil
	}

	record := ParseCandidateJSON(responseText)
	if record == nil {
		return nil
	}

	normalizeBatchField(record)

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s (response '%s', %vms)",
		"Text-model extraction completed", meta.ResponseID, meta.Elapsed,
	)
	tl.LogJSON(tl.Info, palette.Cyan, "Text-model CandidateRecord", record)

	return record
}
