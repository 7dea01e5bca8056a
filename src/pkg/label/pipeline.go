package label

import (
	"context"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// ExtractorInput is everything an extraction tier may consume. Vision uses
// the images; the text model uses OCR text plus hints; regex uses OCR text
// only.
type ExtractorInput struct {
	Images  []RawImage
	OcrText string
	Hints   *HintBundle
}

// Extractor is one extraction tier. A nil return means "this tier is
// unavailable or failed" — tiers never return errors, the chain just moves
// on (network and parse failures are recoverable by design).
type Extractor interface {
	Extract(ctx context.Context, input ExtractorInput) *CandidateRecord
}

// Recognizer turns the image batch into per-image OCR results. Tests
// substitute a deterministic fake.
type Recognizer interface {
	RecognizeAll(ctx context.Context, images []RawImage) []OcrResult
}

/*
Pipeline chains OCR, the vision model, the text model, and the regex
fallback into one best-effort extraction pass. All members are optional:
a nil tier simply contributes nothing, which keeps the chain testable
without network access and keeps degradation graceful in production.
*/
type Pipeline struct {
	Recognizer Recognizer
	Vision     Extractor
	TextModel  Extractor
}

/*
Run executes the extraction chain over one batch of package photos and
always returns a MergedRecord — recoverable source failures degrade to the
next tier, and a total failure yields a mostly-nil record tagged
"regex-only" rather than an error. Input count validation (2–20 images) is
the entry point's concern, not Run's.

The tier policy, as an explicit state machine:

 1. OCR every image (concurrently, best-effort).
 2. Build keyword hints from the combined text.
 3. Try vision with all images; sufficient output wins with source "vision".
 4. Else try the text model over OCR text + hints; sufficient output wins
    with source "ocr_llm".
 5. The regex fallback is always computed — as the record of last resort
    and as extra votes for batch reconciliation and name tie-breaks.
*/
func (p *Pipeline) Run(ctx context.Context, images []RawImage) MergedRecord {
	tl.Log(tl.Notice, palette.BlueBold, "%s label extraction over %v images", "Starting", len(images))

	ocrResults := p.recognize(ctx, images)

	perImageText := make([]string, 0, len(ocrResults))
	for _, result := range ocrResults {
		perImageText = append(perImageText, result.Text)
	}
	combinedText := strings.Join(perImageText, "\n")

	hints := BuildHints(combinedText)

	input := ExtractorInput{Images: images, OcrText: combinedText, Hints: hints}

	var model *CandidateRecord
	source := SourceRegexOnly

	if p.Vision != nil {
		if candidate := p.Vision.Extract(ctx, input); candidate.HasSignal() {
			model = candidate
			source = SourceVision
		} else {
			tl.Log(tl.Info, palette.PurpleDim, "Vision tier %s, falling through", "unavailable or insufficient")
		}
	}

	if model == nil && p.TextModel != nil {
		if candidate := p.TextModel.Extract(ctx, input); candidate.HasSignal() {
			model = candidate
			source = SourceOcrLLM
		} else {
			tl.Log(tl.Info, palette.PurpleDim, "Text-model tier %s, falling through", "unavailable or insufficient")
		}
	}

	// Always computed: last resort and corroborating votes.
	regexRecord := (&RegexExtractor{}).Extract(ctx, input)

	merged := Merge(model, regexRecord, hints, perImageText, source)

	dosageText := combinedText
	if merged.DosageFormOnLabel != nil {
		dosageText = dosageText + "\n" + *merged.DosageFormOnLabel
	}
	merged.DosageForm, merged.Liquid = ParseDosage(dosageText, merged.DosageFormOnLabel)

	EnrichRecord(&merged)

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s label extraction (source '%s')",
		"Finished", merged.Source,
	)

	return merged
}

func (p *Pipeline) recognize(ctx context.Context, images []RawImage) []OcrResult {
	if p.Recognizer == nil {
		return make([]OcrResult, len(images))
	}
	results := p.Recognizer.RecognizeAll(ctx, images)
	if len(results) != len(images) {
		// A misbehaving recognizer must not break indexing downstream.
		padded := make([]OcrResult, len(images))
		copy(padded, results)
		return padded
	}
	return results
}
