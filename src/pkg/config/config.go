package config

import (
	"encoding/json"
	"os"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Config holds the tunables for the label extraction pipeline.

All fields have working defaults, so a missing config file is not fatal:
the loader logs a warning and keeps the defaults.
*/
type Config struct {
	VisionModel    string `json:"vision_model"`     // vision-capable model for the first extraction attempt
	TextModel      string `json:"text_model"`       // text-only model for the OCR fallback path
	Languages      string `json:"languages"`        // tesseract language set, e.g. "eng+nep"
	VisionMaxWidth int    `json:"vision_max_width"` // downscale bound for vision uploads (px)
	VisionQuality  int    `json:"vision_quality"`   // JPEG re-encode quality for vision uploads
}

var Current = defaults()

func defaults() Config {
	return Config{
		VisionModel:    "gpt-4o",
		TextModel:      "gpt-4o-mini",
		Languages:      "eng+nep",
		VisionMaxWidth: 1600,
		VisionQuality:  80,
	}
}

/*
InitializeConfig loads the JSON config file at configPath into Current.

A missing or unreadable file leaves the defaults in place (warning only);
a file that exists but fails to parse is a hard error, since running with
half-applied settings is worse than not running.
*/
func InitializeConfig(configPath string) (e *xerr.Error) {
	trimmedPath := strings.TrimSpace(configPath)
	if trimmedPath == "" {
		tl.Log(tl.Warning, palette.YellowDim, "No config path given, using %s", "defaults")
		return nil
	}

	fileBytes, readErr := os.ReadFile(trimmedPath)
	if readErr != nil {
		tl.Log(
			tl.Warning, palette.YellowDim, "Config file '%s' not readable, using %s",
			trimmedPath, "defaults",
		)
		return nil
	}

	loaded := defaults()
	parseErr := json.Unmarshal(fileBytes, &loaded)
	if parseErr != nil {
		e = xerr.NewError(parseErr, "parse config file", trimmedPath)
		return e
	}

	Current = loaded
	tl.Log(tl.Info1, palette.Green, "Loaded config from '%s'", trimmedPath)
	return nil
}

/*
CheckIfEnvVarsPresent verifies the given environment variables are set and
non-empty. Missing variables are logged and the process exits with code 1.
*/
func CheckIfEnvVarsPresent(names ...string) {
	missing := false
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "Environment variable %s is %s", name, "not set")
			missing = true
		}
	}
	if missing {
		os.Exit(1)
	}
}
