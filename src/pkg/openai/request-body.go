package openai

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
GetBody reads the body of an http.Response, handling compression.
Pass the original url for clearer logging.
*/
func GetBody(resp *http.Response, urlStr string) (body []byte, e *xerr.Error) {
	var reader io.ReadCloser
	contentEncoding := resp.Header.Get("Content-Encoding")

	tl.Log(tl.Verbose5, palette.BlueDim, "Get body (content encoding is '%s') for '%s'", contentEncoding, urlStr)
	switch contentEncoding {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return body, xerr.NewError(err, "Unable to get gzip reader", urlStr)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		reader = flate.NewReader(resp.Body)
		defer reader.Close()
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body)) // wrap to satisfy io.ReadCloser
		// no need to close brotli reader
	case "", "none":
		reader = resp.Body
	default:
		reader = resp.Body
		tl.Log(tl.Warning, palette.YellowDim, "\nUnsupported %s: '%s'", "Content-Encoding", contentEncoding)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return body, xerr.NewError(err, "Failed to read response body", urlStr)
	}
	tl.Log(tl.Verbose6, palette.GreenDim, "Got body length %v (content encoding is '%s') for '%s'", len(body), contentEncoding, urlStr)

	return body, nil
}
