package openai

import (
	"fmt"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
SendPromptReturnResponse sends a prompt via the Responses API and returns:
- responseText: concatenated assistant text from the final response
- meta: run metadata (model, tokens, timing)
- e: typed error (nil on success)

Behavior:
1) POST /v1/responses
2) If status != "completed", poll GET /v1/responses/{id} every 2s until a terminal state:
  - "completed"  -> success (green)
  - "failed"|"cancelled"|"expired" -> purple, returns *xerr.Error

3) Log token usage (when available).
NOTE: We purposely DO NOT print the full response text here to avoid duplicate printing.

	The caller should print responseText.
*/
func SendPromptReturnResponse(inputParameters InputParameters) (responseText string, meta LLMRunMetadata, e *xerr.Error) {
	tl.Log(tl.Info, palette.Blue, "%s %s to %s with model '%s'", "Sending", "prompt", "OpenAI Responses API", inputParameters.Model)
	startTime := time.Now()

	requestPayload := requestPayload{
		Model:           inputParameters.Model,
		Store:           true,
		Instructions:    inputParameters.Instructions,
		Input:           inputParameters.Input,
		Temperature:     inputParameters.Temperature,
		MaxOutputTokens: inputParameters.MaxOutputTokens,
		Background:      true, // allows us to poll
		Text:            inputParameters.Text,
	}

	tl.LogJSON(tl.Debug, palette.CyanDim, "request body", requestPayload)

	initial, createErr := createResponse(inputParameters.OpenAIAPIKey, requestPayload)
	if createErr != nil {
		return "", LLMRunMetadata{}, createErr
	}

	var finalResp responseObject
	switch initial.Status {
	case "", "completed":
		// Completed immediately
		finalResp = initial
	default:
		// Explicit waiting log so the user sees progress right away
		tl.Log(tl.Info, palette.Cyan, "%s current status is '%s' id - '%s' (polling every 2s)...", "Waiting for completion,", initial.Status, initial.ID)
		resp, waitErr := waitForResponseCompletion(inputParameters.OpenAIAPIKey, initial.ID, 2*time.Second, 5*time.Minute)
		if waitErr != nil {
			return "", LLMRunMetadata{ResponseID: initial.ID}, waitErr
		}
		finalResp = resp
	}

	text := extractOutputText(&finalResp)
	meta = ExtractLLMRunMetadata(finalResp, startTime)

	// Token usage logging (if available)
	if finalResp.Usage != nil {
		var cachedTokens int
		if finalResp.Usage.InputTokensDetails != nil {
			cachedTokens = finalResp.Usage.InputTokensDetails.CachedTokens
		}
		tl.Log(
			tl.Detailed,
			palette.CyanDim,
			"Tokens in: %v (cached: %v), out: %v, total: %v",
			finalResp.Usage.InputTokens, cachedTokens, finalResp.Usage.OutputTokens,
			finalResp.Usage.TotalTokens,
		)
	} else {
		tl.Log(tl.Detailed, palette.PurpleDim, "Usage data is %s", "not available")
	}

	tl.Log(tl.Info1, palette.Green, "%s in %s for the response '%s'", "Response completed", time.Since(startTime), finalResp.ID)
	conversationUrl := fmt.Sprintf("https://platform.openai.com/logs/%s", finalResp.ID)
	tl.Log(tl.Debug1, palette.GreenDim, "You can %s at '%s'", "view conversation URL", conversationUrl)
	// Do NOT log the full text here — leave that to the caller to avoid duplicates.

	return text, meta, nil
}
