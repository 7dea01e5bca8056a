package openai

type InputRole string

const (
	RoleDeveloper InputRole = "developer"
	RoleUser      InputRole = "user"
	RoleAssistant InputRole = "assistant"
)

type TextVerbosity string

const (
	TextVerbosityLow    TextVerbosity = "low"
	TextVerbosityMedium TextVerbosity = "medium" // (default behavior if omitted)
	TextVerbosityHigh   TextVerbosity = "high"
)
