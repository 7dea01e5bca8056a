package ocr

import (
	"context"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"golang.org/x/sync/errgroup"
)

/*
RecognizeAll runs OCR over a batch of images concurrently, preserving input
order in the result slice.

Each image gets its own short-lived Tesseract worker (see Recognize), so there
is no shared engine state between goroutines. A failed image contributes an
empty Result; RecognizeAll itself never fails.
*/
func RecognizeAll(ctx context.Context, images [][]byte, languages string) (results []Result) {
	results = make([]Result, len(images))
	if len(images) == 0 {
		return results
	}

	tl.Log(tl.Notice, palette.BlueBold, "%s OCR over %v images", "Starting", len(images))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4) // each worker holds a Tesseract instance; keep memory bounded

	for index, imageBytes := range images {
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[index] = Recognize(imageBytes, languages)
			return nil
		})
	}

	// Workers never return errors (failed images yield empty results).
	_ = group.Wait()

	tl.Log(tl.Notice1, palette.GreenBold, "%s OCR over %v images", "Finished", len(images))
	return results
}
