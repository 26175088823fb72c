// Package assist is the boundary to the external generative model. It
// turns domain requests into structured-output chat calls and converts
// the untrusted payloads back into typed values.
//
// Every failure path degrades to a designed fallback (fixed default
// outline or an empty slice); errors never propagate to the editor.
package assist

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/prompts/toc"
	"github.com/inkroomhq/inkroom/internal/prompts/vocab"
	"github.com/inkroomhq/inkroom/internal/prompts/writing"
	"github.com/inkroomhq/inkroom/internal/providers"
)

// Feature keys used for call records.
const (
	FeatureTOC        = "assist.toc"
	FeatureWriting    = "assist.writing"
	FeatureVocabulary = "assist.vocabulary"
)

// ClientSource yields the client used for the next model call. Wiring
// a registry's Default method here keeps the gateway current across
// config reloads.
type ClientSource func() (providers.LLMClient, error)

// Gateway issues assist requests against the client its source yields.
// Calls are stateless and independent; concurrent use is safe.
type Gateway struct {
	source ClientSource
	log    *CallLog
	logger *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCallLog records every model call in the given log.
func WithCallLog(log *CallLog) Option {
	return func(g *Gateway) { g.log = log }
}

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// New creates a Gateway around a fixed client.
func New(client providers.LLMClient, opts ...Option) *Gateway {
	return NewFromSource(func() (providers.LLMClient, error) {
		return client, nil
	}, opts...)
}

// NewFromSource creates a Gateway that resolves its client per call.
func NewFromSource(source ClientSource, opts ...Option) *Gateway {
	g := &Gateway{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SuggestTableOfContents asks for 5-10 chapter titles for the book. On
// request or parse failure it returns the fixed default outline; a
// well-formed response passes through as-is, even when empty.
func (g *Gateway) SuggestTableOfContents(ctx context.Context, title, description string) []string {
	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "user", Content: toc.UserPrompt(title, description)},
		},
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: toc.SchemaJSON(),
		},
	}

	var payload struct {
		Titles []string `json:"titles"`
	}
	if !g.call(ctx, FeatureTOC, req, &payload) {
		return toc.DefaultTitles()
	}
	return payload.Titles
}

// WritingSuggestions asks for up to three persona-steered suggestions
// for the active section. When both the current content and the section
// title are empty it returns nil without issuing a request. On any
// failure it returns nil.
func (g *Gateway) WritingSuggestions(ctx context.Context, currentContent, sectionTitle, persona, bookContext string) []book.AISuggestion {
	if currentContent == "" && sectionTitle == "" {
		return nil
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: writing.SystemPrompt(persona)},
			{Role: "user", Content: writing.UserPrompt(bookContext, sectionTitle, currentContent)},
		},
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: writing.SchemaJSON(),
		},
	}

	var payload struct {
		Suggestions []book.AISuggestion `json:"suggestions"`
	}
	if !g.call(ctx, FeatureWriting, req, &payload) {
		return nil
	}

	kept := payload.Suggestions[:0]
	for _, s := range payload.Suggestions {
		if s.Text == "" || !book.ValidSuggestionType(s.Type) {
			continue
		}
		kept = append(kept, s)
		if len(kept) == writing.SuggestionCount {
			break
		}
	}
	return kept
}

// RecommendVocabulary asks for up to five evocative words matching the
// described thought or feeling. On any failure it returns nil.
func (g *Gateway) RecommendVocabulary(ctx context.Context, thought string) []book.VocabularyRecommendation {
	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "user", Content: vocab.UserPrompt(thought)},
		},
		ResponseFormat: &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: vocab.SchemaJSON(),
		},
	}

	var payload struct {
		Words []book.VocabularyRecommendation `json:"words"`
	}
	if !g.call(ctx, FeatureVocabulary, req, &payload) {
		return nil
	}
	words := payload.Words
	if len(words) > vocab.WordCount {
		words = words[:vocab.WordCount]
	}
	return words
}

// call runs one chat request, records it, and unmarshals the validated
// payload into out. It reports whether a usable payload was produced.
func (g *Gateway) call(ctx context.Context, feature string, req *providers.ChatRequest, out any) bool {
	client, err := g.source()
	if err != nil {
		g.logger.Warn("no model client available", "feature", feature, "error", err)
		return false
	}

	result, err := client.Chat(ctx, req)
	if g.log != nil && result != nil {
		g.log.Record(result, feature)
	}
	if err != nil {
		g.logger.Warn("assist request failed", "feature", feature, "error", err)
		return false
	}
	if !result.Success || len(result.ParsedJSON) == 0 {
		g.logger.Warn("assist response unusable",
			"feature", feature, "error_type", result.ErrorType, "error", result.ErrorMessage)
		return false
	}
	if err := json.Unmarshal(result.ParsedJSON, out); err != nil {
		g.logger.Warn("assist payload shape mismatch", "feature", feature, "error", err)
		return false
	}
	return true
}
