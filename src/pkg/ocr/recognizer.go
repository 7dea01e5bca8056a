package ocr

import (
	"context"

	"pharmacy-tracker/src/pkg/label"
)

/*
BatchRecognizer adapts the Tesseract batch runner to the pipeline's
Recognizer interface.
*/
type BatchRecognizer struct {
	Languages string // e.g. "eng+nep"; any comma/space/plus form is accepted
}

func (r *BatchRecognizer) RecognizeAll(ctx context.Context, images []label.RawImage) []label.OcrResult {
	imageBytes := make([][]byte, 0, len(images))
	for _, image := range images {
		imageBytes = append(imageBytes, image.Data)
	}

	raw := RecognizeAll(ctx, imageBytes, r.Languages)

	results := make([]label.OcrResult, len(raw))
	for index, result := range raw {
		results[index] = label.OcrResult{Text: result.Text, Confidence: result.Confidence}
	}
	return results
}
