package openai

// Parameters SendPromptReturnResponse takes. We use this instead of
// requestPayload itself because some of the fields (Background, Store, Text)
// are set inside SendPromptReturnResponse and are not meant to be controlled
// by callers.
type InputParameters struct {
	OpenAIAPIKey    string       `json:"open_ai_api_key"` // usually from the OPENAI_API_KEY env var
	Model           string       `json:"model"`
	Instructions    string       `json:"instructions"`
	MaxOutputTokens *int         `json:"max_output_tokens,omitempty"`
	Input           []InputItem  `json:"input"`
	Temperature     *float64     `json:"temperature,omitempty"` // label extraction always passes 0.0
	Text            *TextOptions `json:"text,omitempty"`
}

// ----- Request types we send -----

// InputItem is the simplest message shape the Responses API accepts.
// It mirrors examples like: [{"role":"user","content":"..."}]
type InputItem struct {
	Role    InputRole `json:"role"`
	Content any       `json:"content"` // string, or []map[string]any for text + images
}

type requestPayload struct {
	Model           string       `json:"model"`
	Instructions    string       `json:"instructions"`
	MaxOutputTokens *int         `json:"max_output_tokens,omitempty"`
	Input           []InputItem  `json:"input"`
	Store           bool         `json:"store,omitempty"`
	Temperature     *float64     `json:"temperature,omitempty"`
	Background      bool         `json:"background,omitempty"`
	Text            *TextOptions `json:"text,omitempty"`
}

// ----- Response types we parse -----
/*
Wire structs for the Responses API. Only includes fields we actually use for
LLMRunMetadata; more can be added later without changing the conversion.
*/
type responseObject struct {
	ID          string       `json:"id"`
	Object      string       `json:"object"`
	CreatedAt   int64        `json:"created_at,omitempty"`
	Background  bool         `json:"background,omitempty"`
	Model       string       `json:"model"`
	Status      string       `json:"status"` // "completed", "in_progress", "failed", etc.
	Output      []outputItem `json:"output"`
	Usage       *usageBlock  `json:"usage,omitempty"`
	Error       any          `json:"error,omitempty"`
	Temperature float64      `json:"temperature,omitempty"`
}

type outputItem struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"` // typically "message" or tool events
	Role    string        `json:"role,omitempty"`
	Content []contentItem `json:"content,omitempty"`
}

type contentItem struct {
	Type        string `json:"type"`           // e.g., "output_text"
	Text        string `json:"text,omitempty"` // set when type == "output_text"
	Annotations []any  `json:"annotations,omitempty"`
}

type usageBlock struct {
	InputTokens         int                  `json:"input_tokens"`
	InputTokensDetails  *inputTokensDetails  `json:"input_tokens_details"`
	OutputTokens        int                  `json:"output_tokens"`
	TotalTokens         int                  `json:"total_tokens"`
	OutputTokensDetails *outputTokensDetails `json:"output_tokens_details,omitempty"`
}

type inputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

type outputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

// LLMRunMetadata captures how a model response was generated. Kept alongside
// the extraction logs for auditing and cost tracking.
type LLMRunMetadata struct {
	// Core
	ResponseID      string `json:"response_id"`
	ResponseLogsUrl string `json:"response_logs_url"` // https://platform.openai.com/logs/<ResponseID>
	Model           string `json:"model"`
	ModelSnapshot   string `json:"model_snapshot"` // parsed snapshot date, e.g. "2025-08-07" if present
	Status          string `json:"status"`

	// Parameters
	Temperature float64 `json:"temperature"`

	// Token accounting
	TokensIn     int `json:"tokens_in"`
	TokensCached int `json:"tokens_cached"`
	TokensOut    int `json:"tokens_out"`
	TokensTotal  int `json:"tokens_total"`

	// Timing & IDs
	StartedAt  int64 `json:"started_at"`
	FinishedAt int64 `json:"finished_at"`
	Elapsed    int64 `json:"elapsed"` // milliseconds
}
