package ocr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
EnsureOutputDirectory creates the target directory (and parents) if needed.

It uses os.MkdirAll and returns a *xerr.Error if creation fails.
*/
func EnsureOutputDirectory(outputDirPath string) (e *xerr.Error) {
	err := os.MkdirAll(outputDirPath, 0o755)
	if err != nil {
		e = xerr.NewError(err, "create output directory", outputDirPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Blue, "Ensured output directory '%s'",
		outputDirPath,
	)

	return e
}

/*
CreateRunDirectory makes a per-scan directory under the root, named by
timestamp with filename-safe characters only. Example: ./out/2025-11-26_16-35-31
*/
func CreateRunDirectory(rootDirPath string) (runDirPath string, e *xerr.Error) {
	normalizedRoot := strings.TrimSpace(rootDirPath)
	if normalizedRoot == "" {
		normalizedRoot = "./out"
	}

	e = EnsureOutputDirectory(normalizedRoot)
	if e != nil {
		return "", e
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runDirPath = filepath.Join(normalizedRoot, timestamp)

	e = EnsureOutputDirectory(runDirPath)
	if e != nil {
		return runDirPath, e
	}

	return runDirPath, nil
}

/*
SaveOriginalImage writes one input photo into the run directory as
img-<index>.<ext>, preserving the original bytes exactly.
*/
func SaveOriginalImage(runDirPath string, index int, filename string, imageBytes []byte) (e *xerr.Error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	destinationPath := filepath.Join(runDirPath, fmt.Sprintf("img-%d%s", index, ext))
	writeErr := os.WriteFile(destinationPath, imageBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write original image", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved original image to '%s'",
		destinationPath,
	)

	return e
}

/*
SaveOcrTextToFile writes the OCR text into a .txt file at the given path.

It overwrites any existing file at that location. If writing fails, it
returns a *xerr.Error.
*/
func SaveOcrTextToFile(destinationPath string, ocrText string) (e *xerr.Error) {
	writeErr := os.WriteFile(destinationPath, []byte(ocrText), 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write OCR text file", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved OCR text to '%s'",
		destinationPath,
	)

	return e
}

/*
SaveJSONToFile marshals the given value to pretty-printed JSON and writes it
to a .json file at the given path.

It accepts slices, structs, maps, or any JSON-marshalable value. It overwrites
any existing file at that location. If marshalling or writing fails, it
returns a *xerr.Error.
*/
func SaveJSONToFile(destinationPath string, value any) (e *xerr.Error) {
	jsonBytes, marshalErr := json.MarshalIndent(value, "", "  ")
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal value to JSON", destinationPath)
		return e
	}

	writeErr := os.WriteFile(destinationPath, jsonBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write JSON file", destinationPath)
		return e
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved JSON data to '%s'",
		destinationPath,
	)

	return e
}
