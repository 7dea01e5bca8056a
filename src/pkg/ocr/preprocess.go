package ocr

import (
	"bytes"
	"encoding/base64"
	"image/color"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const (
	// DefaultVisionMaxWidth bounds vision uploads; label photos are sharp
	// enough at this width and upload cost stays flat.
	DefaultVisionMaxWidth = 1600
	// DefaultVisionQuality is the JPEG re-encode quality for vision uploads.
	DefaultVisionQuality = 80
)

/*
PrepareForOcr decodes the source image, applies preprocessing for OCR, and
returns the result encoded as PNG.

The preprocessing steps are:
  - Convert to grayscale.
  - Resize to double height (keeping aspect ratio) for clearer text.
  - Apply a mild sharpening.
  - Strongly increase contrast.
  - Apply a hard threshold to produce a pure black/white image.

If decoding or encoding fails, it returns a *xerr.Error.
*/
func PrepareForOcr(imageBytes []byte) (processed []byte, e *xerr.Error) {
	originalImage, openErr := imaging.Decode(bytes.NewReader(imageBytes), imaging.AutoOrientation(true))
	if openErr != nil {
		e = xerr.NewError(openErr, "decode source image for processing", len(imageBytes))
		return
	}

	// Convert to grayscale for more stable OCR.
	grayscaleImage := imaging.Grayscale(originalImage)

	// Resize (double height, preserve aspect ratio) to help OCR with small label text.
	bounds := grayscaleImage.Bounds()
	height := bounds.Dy()
	targetHeight := height * 2
	resizedImage := imaging.Resize(grayscaleImage, 0, targetHeight, imaging.Lanczos)

	// Apply a mild sharpening filter to make edges crisper.
	sharpenedImage := imaging.Sharpen(resizedImage, 1.0)

	// Strongly increase contrast so print stands out from the foil/carton.
	highContrastImage := imaging.AdjustContrast(sharpenedImage, 100.0)

	// Apply a hard threshold to get a pure black/white image. This mimics the
	// aggressive binarization Tesseract tends to like for packaging print.
	thresholdValue := uint8(200) // tweak between ~180–220 if needed
	binarizedImage := imaging.AdjustFunc(highContrastImage, func(c color.NRGBA) color.NRGBA {
		// Image is already grayscale, so the red channel is enough
		// as a brightness proxy.
		var brightness uint8 = c.R
		if brightness > thresholdValue {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	})

	var encoded bytes.Buffer
	encodeErr := imaging.Encode(&encoded, binarizedImage, imaging.PNG)
	if encodeErr != nil {
		e = xerr.NewError(encodeErr, "encode processed image", nil)
		return
	}

	tl.Log(
		tl.Verbose, palette.GreenDim, "Prepared OCR image (%v bytes in, %v bytes out)",
		len(imageBytes), encoded.Len(),
	)

	return encoded.Bytes(), nil
}

/*
PrepareForVision converts a raw photo into a base64 data URL suitable for an
input_image part of a vision request.

Steps:
  - Decode with auto-orientation (honours the embedded EXIF rotation).
  - Downscale to at most maxWidth px wide (never upscale).
  - Re-encode as JPEG with the given quality.
  - Emit as "data:image/jpeg;base64,...."

maxWidth/quality of 0 fall back to the package defaults.
*/
func PrepareForVision(imageBytes []byte, maxWidth int, quality int) (dataURL string, e *xerr.Error) {
	if maxWidth <= 0 {
		maxWidth = DefaultVisionMaxWidth
	}
	if quality <= 0 {
		quality = DefaultVisionQuality
	}

	originalImage, openErr := imaging.Decode(bytes.NewReader(imageBytes), imaging.AutoOrientation(true))
	if openErr != nil {
		e = xerr.NewError(openErr, "decode source image for vision upload", len(imageBytes))
		return
	}

	resizedImage := originalImage
	if originalImage.Bounds().Dx() > maxWidth {
		resizedImage = imaging.Resize(originalImage, maxWidth, 0, imaging.Lanczos)
	}

	var encoded bytes.Buffer
	encodeErr := imaging.Encode(&encoded, resizedImage, imaging.JPEG, imaging.JPEGQuality(quality))
	if encodeErr != nil {
		e = xerr.NewError(encodeErr, "encode vision upload JPEG", quality)
		return
	}

	dataURL = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded.Bytes())

	tl.Log(
		tl.Verbose, palette.GreenDim, "Prepared vision upload (%v bytes in, %v chars data URL)",
		len(imageBytes), len(dataURL),
	)

	return dataURL, nil
}
