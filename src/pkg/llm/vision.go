package llm

import (
	"context"
	"fmt"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"pharmacy-tracker/src/pkg/label"
	"pharmacy-tracker/src/pkg/ocr"
	"pharmacy-tracker/src/pkg/openai"
)

/*
VisionExtractor is the first, highest-trust extraction tier: it sends every
photo of the package (downscaled and re-encoded) plus the schema contract to
a vision-capable model in a single request.
*/
type VisionExtractor struct {
	Model    string // e.g. "gpt-4o"
	MaxWidth int    // 0 -> ocr.DefaultVisionMaxWidth
	Quality  int    // 0 -> ocr.DefaultVisionQuality
}

/*
Extract implements label.Extractor. Every failure mode — no decodable
images, network error, non-JSON response — returns nil so the pipeline
falls through to the OCR path.
*/
func (x *VisionExtractor) Extract(_ context.Context, input label.ExtractorInput) *label.CandidateRecord {
	tl.Log(
		tl.Notice, palette.BlueBold, "%s with %s model '%s' over %v images",
		"Extracting label via vision", "OpenAI", x.Model, len(input.Images),
	)

	dataURLs := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		dataURL, e := ocr.PrepareForVision(image.Data, x.MaxWidth, x.Quality)
		if e != nil {
			tl.Log(tl.Warning, palette.YellowDim, "Skipping image '%s' for vision: '%s'", image.Filename, e)
			continue
		}
		dataURLs = append(dataURLs, dataURL)
	}
	if len(dataURLs) == 0 {
		tl.Log(tl.Warning, palette.PurpleDim, "No usable images for the %s tier", "vision")
		return nil
	}

	var userTextBuilder strings.Builder
	userTextBuilder.WriteString("Attached are photographs of one medicine package. ")
	userTextBuilder.WriteString(fmt.Sprintf("There are %d photos of the same package from different sides.\n", len(dataURLs)))
	userTextBuilder.WriteString("Read the label fields from the images only.\n")
	if hints := input.Hints.PromptBlock(); hints != "" {
		userTextBuilder.WriteString("\nOCR keyword hints (noisy, use only to resolve ambiguous glyphs):\n")
		userTextBuilder.WriteString(hints)
	}

	responseText, meta, e := openai.RequestStructuredVision(
		x.Model,
		extractionInstructions,
		extractionDeveloperMessage,
		userTextBuilder.String(),
		dataURLs,
		CandidateSchemaProperties(),
		2048,
	)
	if e != nil {
		tl.Log(tl.Warning, palette.PurpleDim, "Vision model call failed, tier unavailable: '%s'", e)
		return nil
	}

	record := ParseCandidateJSON(responseText)
	if record == nil {
		return nil
	}

	normalizeBatchField(record)

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s (response '%s', %vms)",
		"Vision extraction completed", meta.ResponseID, meta.Elapsed,
	)
	tl.LogJSON(tl.Info, palette.Cyan, "Vision CandidateRecord", record)

	return record
}

/*
normalizeBatchField re-runs the deterministic batch normalizer over the
model's guess. The model is asked for the canonical shape already, but a
non-conforming value is dropped to null rather than trusted.
*/
func normalizeBatchField(record *label.CandidateRecord) {
	if record.BatchNumber == nil {
		return
	}
	if token, ok := label.NormalizeBatchToken(*record.BatchNumber); ok {
		record.BatchNumber = &token
		return
	}
	record.BatchNumber = nil
}
