package openai

import (
	"os"
	"sort"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"pharmacy-tracker/src/pkg/util"
)

/*
RequestStructuredText sends a text-only prompt with a strict JSON schema and
returns the raw response text. The caller owns JSON parsing: label extraction
needs tolerant parsing (fence stripping, brace salvage) rather than a hard
unmarshal here.
*/
func RequestStructuredText(
	model string,
	instructions, developerMessage, userMessage string,
	schemaProperties map[string]any,
	maxOutputTokens int,
) (responseText string, meta LLMRunMetadata, e *xerr.Error) {

	schema := StrictObj(schemaProperties)
	textOptions := TextAsJSONSchema("medicine-label", schema, true)

	inputParameters := InputParameters{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		Model:        model,
		Instructions: instructions,
		Input: []InputItem{
			{Role: RoleDeveloper, Content: developerMessage},
			{Role: RoleUser, Content: userMessage},
		},
		Temperature:     util.Ptr(0.0), // extraction must be deterministic, never creative
		MaxOutputTokens: &maxOutputTokens,
		Text:            &textOptions,
	}

	responseText, meta, e = SendPromptReturnResponse(inputParameters)
	if e != nil {
		return "", meta, e
	}

	tl.Log(tl.Info1, palette.Green, "%s id is '%s'", "Received response", meta.ResponseID)
	tl.Log(tl.Verbose, palette.Cyan, "Response text:\n```\n%s\n```", responseText)

	return responseText, meta, nil
}

/*
RequestStructuredVision is like RequestStructuredText, but the user message is
structured content carrying text plus one input_image per data URL. All images
of the package batch go into a single request so the model can reconcile the
label across photos.
*/
func RequestStructuredVision(
	model string,
	instructions, developerMessage, userText string,
	imageDataURLs []string,
	schemaProperties map[string]any,
	maxOutputTokens int,
) (responseText string, meta LLMRunMetadata, e *xerr.Error) {

	schema := StrictObj(schemaProperties)
	textOptions := TextAsJSONSchema("medicine-label", schema, true)

	// User content: text + every image
	userContent := []map[string]any{
		{
			"type": "input_text",
			"text": userText,
		},
	}
	for _, dataURL := range imageDataURLs {
		userContent = append(userContent, map[string]any{
			"type":      "input_image",
			"image_url": dataURL,
		})
	}

	inputParameters := InputParameters{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		Model:        model,
		Instructions: instructions,
		Input: []InputItem{
			{
				Role:    RoleDeveloper,
				Content: developerMessage, // plain string is still fine
			},
			{
				Role:    RoleUser,
				Content: userContent, // text + images
			},
		},
		Temperature:     util.Ptr(0.0),
		MaxOutputTokens: &maxOutputTokens,
		Text:            &textOptions,
	}

	responseText, meta, e = SendPromptReturnResponse(inputParameters)
	if e != nil {
		return "", meta, e
	}

	tl.Log(tl.Info1, palette.Green, "%s id is '%s'", "Received response", meta.ResponseID)
	tl.Log(tl.Verbose, palette.Cyan, "Response text:\n```\n%s\n```", responseText)

	return responseText, meta, nil
}

// StrictObj builds a strict JSON Schema "object" where:
// - "properties" = props
// - "additionalProperties" = false
// - "required" = all keys from props (sorted for determinism)
func StrictObj(props map[string]any) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
		"required":             keys,
	}
}
