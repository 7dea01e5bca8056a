package openai

// TextOptions configures output formatting in the Responses API.
// Example:
// "text": { "format": { "type": "text" }, "verbosity": "medium" }
// "text": { "format": { "type": "json_object" } }
// "text": { "format": { "type": "json_schema", "schema": {...}, "strict": true } }
type TextOptions struct {
	Format    TextFormat    `json:"format"`
	Verbosity TextVerbosity `json:"verbosity,omitempty"`
}

// TextFormat selects the output format and (for json_schema) carries its config.
// For type == "json_schema", `name` is REQUIRED at this level; `schema` is the
// raw schema object and `strict` enforces exact adherence.
type TextFormat struct {
	Type   TextFormatType `json:"type"`
	Name   string         `json:"name,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
	Strict *bool          `json:"strict,omitempty"`
}

// TextFormatType enumerates supported output formats.
type TextFormatType string

const (
	TextFormatTypeText       TextFormatType = "text"
	TextFormatTypeJSONObject TextFormatType = "json_object"
	TextFormatTypeJSONSchema TextFormatType = "json_schema"
)

func TextAsPlain(verbosity TextVerbosity) TextOptions {
	return TextOptions{
		Format:    TextFormat{Type: TextFormatTypeText},
		Verbosity: verbosity,
	}
}

func TextAsJSONObject() TextOptions {
	return TextOptions{
		Format: TextFormat{Type: TextFormatTypeJSONObject},
	}
}

func TextAsJSONSchema(name string, schema map[string]any, strict bool) TextOptions {
	return TextOptions{
		Format: TextFormat{
			Type:   TextFormatTypeJSONSchema,
			Name:   name,
			Schema: schema,
			Strict: &strict,
		},
	}
}
