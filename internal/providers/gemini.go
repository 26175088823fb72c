package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const (
	GeminiName         = "gemini"
	geminiDefaultModel = "gemini-3-flash-preview"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey            string
	Model             string        // default model when the request does not set one
	MaxRetries        int           // transport retry attempts
	RetryDelay        time.Duration // base backoff delay
	RequestsPerMinute int           // client-side request quota (0 = unlimited)
}

// GeminiClient implements LLMClient against the Gemini API, using native
// structured output (response MIME type + response schema).
type GeminiClient struct {
	client       *genai.Client
	defaultModel string
	maxRetries   int
	retryDelay   time.Duration
	limiter      *RateLimiter
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	gc := &GeminiClient{
		client:       client,
		defaultModel: cfg.Model,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
	}
	if cfg.RequestsPerMinute > 0 {
		gc.limiter = NewRateLimiter(cfg.RequestsPerMinute)
	}
	return gc, nil
}

// Name returns the client identifier.
func (c *GeminiClient) Name() string {
	return GeminiName
}

// Chat sends a single completion request.
func (c *GeminiClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	result := &ChatResult{
		RequestID: requestID,
		Provider:  GeminiName,
		ModelUsed: model,
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			result.ErrorType = "rate_limit_wait"
			result.ErrorMessage = err.Error()
			result.ExecutionTime = time.Since(start)
			return result, err
		}
	}

	cfg := &genai.GenerateContentConfig{}
	if sys := req.SystemPrompt(); sys != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: sys}}}
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.ResponseFormat != nil {
		schema, err := geminiSchema(req.ResponseFormat.JSONSchema)
		if err != nil {
			result.ErrorType = "schema_error"
			result.ErrorMessage = err.Error()
			result.ExecutionTime = time.Since(start)
			return result, err
		}
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	var resp *genai.GenerateContentResponse
	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			var callErr error
			resp, callErr = c.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt()), cfg)
			return callErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	result.Attempts = attempts

	if err != nil {
		result.ErrorType = "request_error"
		result.ErrorMessage = err.Error()
		result.ExecutionTime = time.Since(start)
		return result, fmt.Errorf("gemini request failed: %w", err)
	}

	result.Content = resp.Text()
	if usage := resp.UsageMetadata; usage != nil {
		result.PromptTokens = int(usage.PromptTokenCount)
		result.CompletionTokens = int(usage.CandidatesTokenCount)
		result.TotalTokens = int(usage.TotalTokenCount)
	}
	result.Success = true
	result.ExecutionTime = time.Since(start)

	if req.ResponseFormat != nil {
		parsed, perr := ParseStructuredJSON(result.Content)
		if perr == nil {
			perr = ValidateStructuredJSON(req.ResponseFormat.JSONSchema, parsed)
		}
		if perr != nil {
			result.Success = false
			result.ErrorType = "json_parse"
			result.ErrorMessage = perr.Error()
		} else {
			result.ParsedJSON = parsed
		}
	}

	return result, nil
}

// geminiSchema converts a declared json_schema payload into the Gemini
// native schema type. Only the subset the assist prompts use is mapped:
// object/array/string/integer/number/boolean, enum, properties, required,
// items, description, and ["T","null"] nullability.
func geminiSchema(raw json.RawMessage) (*genai.Schema, error) {
	core, err := CoreSchema(raw)
	if err != nil {
		return nil, err
	}
	var node any
	if err := json.Unmarshal(core, &node); err != nil {
		return nil, fmt.Errorf("invalid response schema: %w", err)
	}
	return geminiSchemaNode(node)
}

func geminiSchemaNode(node any) (*genai.Schema, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema node is not an object")
	}

	out := &genai.Schema{}
	if desc, ok := m["description"].(string); ok {
		out.Description = desc
	}

	typeName, nullable := schemaTypeName(m["type"])
	if nullable {
		out.Nullable = genai.Ptr(true)
	}
	switch typeName {
	case "object":
		out.Type = genai.TypeObject
		if props, ok := m["properties"].(map[string]any); ok {
			out.Properties = make(map[string]*genai.Schema, len(props))
			for name, sub := range props {
				converted, err := geminiSchemaNode(sub)
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", name, err)
				}
				out.Properties[name] = converted
			}
		}
		if req, ok := m["required"].([]any); ok {
			for _, r := range req {
				if s, ok := r.(string); ok {
					out.Required = append(out.Required, s)
				}
			}
		}
	case "array":
		out.Type = genai.TypeArray
		if items, ok := m["items"]; ok {
			converted, err := geminiSchemaNode(items)
			if err != nil {
				return nil, fmt.Errorf("array items: %w", err)
			}
			out.Items = converted
		}
	case "string":
		out.Type = genai.TypeString
		if enum, ok := m["enum"].([]any); ok {
			for _, e := range enum {
				if s, ok := e.(string); ok {
					out.Enum = append(out.Enum, s)
				}
			}
		}
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type %q", typeName)
	}

	return out, nil
}

// schemaTypeName resolves "type" values that are either a string or a
// ["T","null"] union.
func schemaTypeName(v any) (name string, nullable bool) {
	switch t := v.(type) {
	case string:
		return t, false
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s == "null" {
				nullable = true
			} else {
				name = s
			}
		}
		return name, nullable
	}
	return "", false
}
