package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"pharmacy-tracker/src/pkg/config"
	"pharmacy-tracker/src/pkg/label"
	"pharmacy-tracker/src/pkg/llm"
	"pharmacy-tracker/src/pkg/ocr"
	"pharmacy-tracker/src/pkg/util"
)

const (
	minImagesPerScan = 2
	maxImagesPerScan = 20
	maxImageBytes    = 8 << 20 // 8 MB per photo is plenty for a label shot
)

/*
main runs the full label extraction pipeline over one scan.

-images must be a directory containing 2–20 photos (.jpg/.jpeg/.png) of ONE
medicine package. The pipeline OCRs every photo, asks the vision model, falls
back to the text model and the regex extractor as needed, and saves the
merged record as label-record.json in a timestamped run directory.
*/
func main() {
	config.CheckIfEnvVarsPresent("OPENAI_API_KEY")

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	imagesPath := flag.String("images", "", "Directory with 2-20 photos (.jpg/.jpeg/.png) of one medicine package.")
	outputDirPath := flag.String("out", "./out", "Directory where scan artifacts and the extracted record will be stored.")
	language := flag.String("language", "", "Tesseract language set, e.g. eng, nep, eng+nep. Empty uses the config value.")

	flag.Parse()
	util.RequiredFlag(imagesPath, "images")
	util.EnsureFlags()

	e := config.InitializeConfig(*configPath)
	e.QuitIf("error")

	languages := strings.TrimSpace(*language)
	if languages == "" {
		languages = config.Current.Languages
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s entrypoint. Config path: '%s'",
		"Running label extraction pipeline", *configPath,
	)

	images, e := loadScanImages(*imagesPath)
	e.QuitIf("error")

	runDirPath, e := ocr.CreateRunDirectory(*outputDirPath)
	e.QuitIf("error")

	for index, image := range images {
		e = ocr.SaveOriginalImage(runDirPath, index, image.Filename, image.Data)
		e.QuitIf("error")
	}

	pipeline := &label.Pipeline{
		Recognizer: &ocr.BatchRecognizer{Languages: languages},
		Vision: &llm.VisionExtractor{
			Model:    config.Current.VisionModel,
			MaxWidth: config.Current.VisionMaxWidth,
			Quality:  config.Current.VisionQuality,
		},
		TextModel: &llm.TextModelExtractor{Model: config.Current.TextModel},
	}

	record := pipeline.Run(context.Background(), images)

	recordPath := filepath.Join(runDirPath, "label-record.json")
	e = ocr.SaveJSONToFile(recordPath, record)
	e.QuitIf("error")

	tl.LogJSON(tl.Info, palette.Cyan, "MergedRecord", record)
	tl.Log(
		tl.Notice1, palette.GreenBold, "%s (source '%s'). Record saved to '%s'",
		"Label extraction completed", record.Source, recordPath,
	)
}

/*
loadScanImages validates the caller input before the pipeline runs: the path
must be a directory holding 2–20 supported images, none oversized. These are
caller errors, not pipeline errors, so they fail fast here.
*/
func loadScanImages(imagesPath string) (images []label.RawImage, e *xerr.Error) {
	trimmed := strings.TrimSpace(imagesPath)

	info, statErr := os.Stat(trimmed)
	if statErr != nil {
		e = xerr.NewError(statErr, "stat -images input path", trimmed)
		return
	}
	if !info.IsDir() {
		err := fmt.Errorf("not a directory: %s", trimmed)
		e = xerr.NewError(err, "-images must be a directory of photos of one package", trimmed)
		return
	}

	entries, readErr := os.ReadDir(trimmed)
	if readErr != nil {
		e = xerr.NewError(readErr, "read directory", trimmed)
		return
	}

	var imagePaths []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !isAllowedImageExt(ext) {
			continue
		}
		imagePaths = append(imagePaths, filepath.Join(trimmed, ent.Name()))
	}
	sort.Strings(imagePaths)

	if len(imagePaths) < minImagesPerScan || len(imagePaths) > maxImagesPerScan {
		err := fmt.Errorf("found %d images, need %d-%d", len(imagePaths), minImagesPerScan, maxImagesPerScan)
		e = xerr.NewError(err, "a scan is 2-20 photos of one package", trimmed)
		return
	}

	for _, imagePath := range imagePaths {
		imageBytes, fileErr := os.ReadFile(imagePath)
		if fileErr != nil {
			e = xerr.NewError(fileErr, "read image file", imagePath)
			return nil, e
		}
		if len(imageBytes) > maxImageBytes {
			err := fmt.Errorf("image is %d bytes, limit is %d", len(imageBytes), maxImageBytes)
			e = xerr.NewError(err, "image file too large", imagePath)
			return nil, e
		}

		ext := strings.ToLower(filepath.Ext(imagePath))
		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "image/jpeg"
		}

		images = append(images, label.RawImage{
			Data:        imageBytes,
			Filename:    filepath.Base(imagePath),
			ContentType: contentType,
		})
	}

	tl.Log(tl.Info1, palette.Cyan, "Loaded '%d' images from '%s'", len(images), trimmed)
	return images, nil
}

func isAllowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}
