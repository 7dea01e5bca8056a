package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Result is the outcome of one OCR pass over one image.
// Confidence is the mean word confidence in 0..100 (0 when the engine failed).
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

/*
NormalizeLanguages canonicalizes a language-set string into the "+"-joined
form Tesseract expects. Comma-, space- and plus-separated inputs are all
accepted: "eng, nep" -> "eng+nep". Empty input falls back to "eng".
*/
func NormalizeLanguages(languages string) string {
	fields := strings.FieldsFunc(languages, func(r rune) bool {
		return r == ',' || r == '+' || r == ' ' || r == '\t'
	})

	cleaned := make([]string, 0, len(fields))
	seen := map[string]bool{}
	for _, field := range fields {
		lang := strings.ToLower(strings.TrimSpace(field))
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		cleaned = append(cleaned, lang)
	}

	if len(cleaned) == 0 {
		return "eng"
	}
	return strings.Join(cleaned, "+")
}

/*
Recognize runs OCR over one image using gosseract.

The worker is scoped to this call: created here, closed on every exit path.
OCR is a best-effort signal, not a hard dependency, so any engine failure is
logged and reported as an empty Result instead of an error — one bad photo
must not abort the batch.
*/
func Recognize(imageBytes []byte, languages string) (result Result) {
	processed, e := PrepareForOcr(imageBytes)
	if e != nil {
		tl.Log(tl.Warning, palette.YellowDim, "Preprocessing failed, OCR skipped: '%s'", e)
		return Result{}
	}

	languageSet := NormalizeLanguages(languages)
	tl.Log(tl.Info1, palette.Cyan, "Running OCR (languages '%s')", languageSet)

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	err := client.SetLanguage(strings.Split(languageSet, "+")...)
	if err != nil {
		tl.Log(tl.Warning, palette.YellowDim, "unable to SetLanguage('%s'): '%s'", languageSet, err)
		return Result{}
	}

	// Preserve multiple spaces between words/columns
	err = client.SetVariable("preserve_interword_spaces", "1")
	if err != nil {
		tl.Log(tl.Warning, palette.YellowDim, "unable to SetVariable(preserve_interword_spaces): '%s'", err)
		return Result{}
	}

	// Match CLI: `--psm 6` (single uniform block of text).
	err = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		tl.Log(tl.Warning, palette.YellowDim, "unable to SetPageSegMode(PSM_SINGLE_BLOCK): '%s'", err)
		return Result{}
	}

	err = client.SetImageFromBytes(processed)
	if err != nil {
		tl.Log(tl.Warning, palette.YellowDim, "unable to SetImageFromBytes: '%s'", err)
		return Result{}
	}

	ocrText, ocrErr := client.Text()
	if ocrErr != nil {
		tl.Log(tl.Warning, palette.YellowDim, "OCR failed: '%s'", ocrErr)
		return Result{}
	}

	confidence := meanWordConfidence(client)

	tl.Log(
		tl.Info1, palette.Green, "OCR completed (text length: %s, confidence: %.1f)",
		fmt.Sprintf("%d", len(ocrText)), confidence,
	)

	return Result{Text: ocrText, Confidence: confidence}
}

/*
meanWordConfidence averages word-level confidences from the current page.
Returns 0 when no words were recognized.
*/
func meanWordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}

	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes))
}
