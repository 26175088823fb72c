package writing

import "encoding/json"

// Schema is the JSON schema for tagged writing suggestions. The root is
// an object; hosted structured-output APIs reject array roots.
var Schema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "writing_suggestions",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"suggestions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text": map[string]any{
								"type":        "string",
								"description": "추천 문구",
							},
							"type": map[string]any{
								"type": "string",
								"enum": []string{"continuation", "phrase", "idea"},
							},
						},
						"required":             []string{"text", "type"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"suggestions"},
			"additionalProperties": false,
		},
	},
}

// SchemaJSON returns the schema serialized for a ChatRequest.
func SchemaJSON() json.RawMessage {
	raw, err := json.Marshal(Schema)
	if err != nil {
		panic(err) // static map, cannot fail
	}
	return raw
}
