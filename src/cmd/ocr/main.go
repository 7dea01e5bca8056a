package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"pharmacy-tracker/src/pkg/ocr"
	"pharmacy-tracker/src/pkg/util"
)

/*
main runs OCR (only) on a single package photo and stores the artifacts:
the binarized image the engine actually saw (clean.png), the raw text
(ocr.txt) and the result with confidence (ocr.json). Useful for tuning the
preprocessing chain and the language set without burning model calls.
*/
func main() {
	imagePath := flag.String("image", "", "Path to a package photo (.jpg/.jpeg/.png).")
	outputDirPath := flag.String("out", "./out", "Directory where processed images and OCR text will be stored.")
	language := flag.String("language", "eng+nep", "Language of the label. eng, nep, hin, eng+nep etc. \"tesseract --list-langs\", \"apt install tesseract-ocr-nep\"")

	flag.Parse()
	util.RequiredFlag(imagePath, "image")
	util.EnsureFlags()

	imageBytes, readErr := os.ReadFile(*imagePath)
	if readErr != nil {
		e := xerr.NewError(readErr, "read input image", *imagePath)
		e.QuitIf("error")
	}

	runDirPath, e := ocr.CreateRunDirectory(*outputDirPath)
	e.QuitIf("error")

	tl.Log(tl.Notice, palette.BlueBold, "%s OCR for '%s' into '%s'", "Starting", *imagePath, runDirPath)

	processed, e := ocr.PrepareForOcr(imageBytes)
	e.QuitIf("error")

	cleanPath := filepath.Join(runDirPath, "clean.png")
	writeErr := os.WriteFile(cleanPath, processed, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write processed image", cleanPath)
		e.QuitIf("error")
	}

	result := ocr.Recognize(imageBytes, *language)

	e = ocr.SaveOcrTextToFile(filepath.Join(runDirPath, "ocr.txt"), result.Text)
	e.QuitIf("error")

	e = ocr.SaveJSONToFile(filepath.Join(runDirPath, "ocr.json"), result)
	e.QuitIf("error")

	tl.Log(
		tl.Notice1, palette.GreenBold, "OCR finished (text length: %s, confidence: %.1f). Artifacts in '%s'",
		fmt.Sprintf("%d", len(result.Text)), result.Confidence, runDirPath,
	)
}
