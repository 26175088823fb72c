package vocab

import "encoding/json"

// Schema is the JSON schema for vocabulary recommendations. The root is
// an object; hosted structured-output APIs reject array roots.
var Schema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "vocabulary",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"word": map[string]any{
								"type":        "string",
								"description": "단어",
							},
							"meaning": map[string]any{
								"type":        "string",
								"description": "의미",
							},
							"nuance": map[string]any{
								"type":        "string",
								"description": "어감/활용법",
							},
						},
						"required":             []string{"word", "meaning", "nuance"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"words"},
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
