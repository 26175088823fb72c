package toc

import "encoding/json"

// Schema is the JSON schema for the chapter-title list. The root is an
// object; hosted structured-output APIs reject array roots.
var Schema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "toc_titles",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"titles": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":        "string",
						"description": "챕터 제목",
					},
					"description": "제안된 챕터 제목, 위에서 아래 순서",
				},
			},
			"required":             []string{"titles"},
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
