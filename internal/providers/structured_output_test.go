package providers

import (
	"encoding/json"
	"testing"
)

func TestParseStructuredJSON_PlainArray(t *testing.T) {
	got, err := ParseStructuredJSON(`["프롤로그","서론"]`)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	var titles []string
	if err := json.Unmarshal(got, &titles); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(titles) != 2 || titles[0] != "프롤로그" {
		t.Fatalf("titles = %v", titles)
	}
}

func TestParseStructuredJSON_StripsCodeFence(t *testing.T) {
	got, err := ParseStructuredJSON("```json\n{\"ok\":true}\n```")
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ok, _ := parsed["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %#v", parsed)
	}
}

func TestParseStructuredJSON_SurroundingProse(t *testing.T) {
	got, err := ParseStructuredJSON(`Here you go: [{"word":"아련하다"}] hope that helps`)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	var items []map[string]string
	if err := json.Unmarshal(got, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 1 || items[0]["word"] != "아련하다" {
		t.Fatalf("items = %v", items)
	}
}

func TestParseStructuredJSON_NotJSON(t *testing.T) {
	if _, err := ParseStructuredJSON("not json"); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
	if _, err := ParseStructuredJSON(""); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestValidateStructuredJSON(t *testing.T) {
	schema := json.RawMessage(`{
		"type":"json_schema",
		"json_schema":{
			"name":"writing_suggestions",
			"strict":true,
			"schema":{
				"type":"array",
				"items":{
					"type":"object",
					"properties":{
						"text":{"type":"string"},
						"type":{"type":"string","enum":["continuation","phrase","idea"]}
					},
					"required":["text","type"],
					"additionalProperties":false
				}
			}
		}
	}`)

	valid := json.RawMessage(`[{"text":"밤이 깊었다","type":"continuation"}]`)
	if err := ValidateStructuredJSON(schema, valid); err != nil {
		t.Fatalf("ValidateStructuredJSON(valid) error = %v", err)
	}

	invalid := json.RawMessage(`[{"text":"밤이 깊었다","type":"sonnet"}]`)
	if err := ValidateStructuredJSON(schema, invalid); err == nil {
		t.Fatal("ValidateStructuredJSON(invalid) expected error, got nil")
	}
}

func TestCoreSchemaUnwrapsWrapper(t *testing.T) {
	wrapped := json.RawMessage(`{"type":"json_schema","json_schema":{"name":"x","schema":{"type":"array","items":{"type":"string"}}}}`)
	core, err := CoreSchema(wrapped)
	if err != nil {
		t.Fatalf("CoreSchema() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(core, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["type"] != "array" {
		t.Fatalf("core schema = %v", doc)
	}
}

func TestSchemaName(t *testing.T) {
	wrapped := json.RawMessage(`{"type":"json_schema","json_schema":{"name":"toc_titles","schema":{}}}`)
	if got := SchemaName(wrapped, "fallback"); got != "toc_titles" {
		t.Fatalf("SchemaName() = %q", got)
	}
	if got := SchemaName(json.RawMessage(`{}`), "fallback"); got != "fallback" {
		t.Fatalf("SchemaName(no name) = %q", got)
	}
}

func TestGeminiSchemaConversion(t *testing.T) {
	raw := json.RawMessage(`{
		"type":"json_schema",
		"json_schema":{
			"name":"vocab",
			"schema":{
				"type":"array",
				"items":{
					"type":"object",
					"properties":{
						"word":{"type":"string","description":"단어"},
						"kind":{"type":"string","enum":["a","b"]},
						"note":{"type":["string","null"]}
					},
					"required":["word"]
				}
			}
		}
	}`)

	schema, err := geminiSchema(raw)
	if err != nil {
		t.Fatalf("geminiSchema() error = %v", err)
	}
	if schema.Items == nil || schema.Items.Properties["word"] == nil {
		t.Fatalf("converted schema missing items: %+v", schema)
	}
	if schema.Items.Properties["word"].Description != "단어" {
		t.Fatal("description not carried over")
	}
	if len(schema.Items.Properties["kind"].Enum) != 2 {
		t.Fatal("enum not carried over")
	}
	if schema.Items.Properties["note"].Nullable == nil || !*schema.Items.Properties["note"].Nullable {
		t.Fatal("nullable union not detected")
	}
	if got := schema.Items.Required; len(got) != 1 || got[0] != "word" {
		t.Fatalf("required = %v", got)
	}
}

func TestMockClientCountsAndFails(t *testing.T) {
	c := NewMockClient()
	c.ResponseText = `["a","b"]`

	res, err := c.Chat(t.Context(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
		ResponseFormat: &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: json.RawMessage(`{"schema":{"type":"array","items":{"type":"string"}}}`),
		},
	})
	if err != nil || !res.Success {
		t.Fatalf("Chat() = %+v, %v", res, err)
	}
	if c.RequestCount() != 1 {
		t.Fatalf("request count = %d", c.RequestCount())
	}

	c.ShouldFail = true
	if _, err := c.Chat(t.Context(), &ChatRequest{}); err == nil {
		t.Fatal("expected failure")
	}
}
