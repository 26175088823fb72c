package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// SuggestTOCResponse carries the suggested chapter titles.
type SuggestTOCResponse struct {
	Titles []string `json:"titles"`
}

// SuggestTOCEndpoint handles POST /assist/toc. It asks the model for a
// chapter outline based on the book's title and description. The result
// is returned to the caller; nothing is applied to the book until the
// caller posts it back to /book/toc.
type SuggestTOCEndpoint struct{}

func (e *SuggestTOCEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/assist/toc", e.handler
}

func (e *SuggestTOCEndpoint) RequiresInit() bool { return true }

func (e *SuggestTOCEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	gateway := svcctx.GatewayFrom(r.Context())
	if session == nil || gateway == nil {
		writeError(w, http.StatusServiceUnavailable, "assist gateway not initialized")
		return
	}

	b := session.Book()
	titles := gateway.SuggestTableOfContents(r.Context(), b.Title, b.Description)
	writeJSON(w, http.StatusOK, SuggestTOCResponse{Titles: titles})
}

func (e *SuggestTOCEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "toc",
		Short: "Ask the model for a table of contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SuggestTOCResponse
			if err := client.Post(ctx, "/assist/toc", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SuggestionsResponse carries writing suggestions for the active section.
type SuggestionsResponse struct {
	Suggestions []book.AISuggestion `json:"suggestions"`
}

// SuggestionsEndpoint handles POST /assist/suggestions. The prompt is
// built from the active section and the book's persona and description.
type SuggestionsEndpoint struct{}

func (e *SuggestionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/assist/suggestions", e.handler
}

func (e *SuggestionsEndpoint) RequiresInit() bool { return true }

func (e *SuggestionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	gateway := svcctx.GatewayFrom(r.Context())
	if session == nil || gateway == nil {
		writeError(w, http.StatusServiceUnavailable, "assist gateway not initialized")
		return
	}

	b := session.Book()
	sec, ok := session.ActiveSection()
	if !ok {
		writeError(w, http.StatusNotFound, "book has no sections")
		return
	}

	suggestions := gateway.WritingSuggestions(r.Context(), sec.Content, sec.Title, b.AIPersona, b.Description)
	if suggestions == nil {
		suggestions = []book.AISuggestion{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (e *SuggestionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "Get writing suggestions for the active section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SuggestionsResponse
			if err := client.Post(ctx, "/assist/suggestions", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// VocabularyRequest describes the thought or feeling to find words for.
type VocabularyRequest struct {
	Thought string `json:"thought"`
}

// VocabularyResponse carries recommended words.
type VocabularyResponse struct {
	Words []book.VocabularyRecommendation `json:"words"`
}

// VocabularyEndpoint handles POST /assist/vocabulary.
type VocabularyEndpoint struct{}

func (e *VocabularyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/assist/vocabulary", e.handler
}

func (e *VocabularyEndpoint) RequiresInit() bool { return true }

func (e *VocabularyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req VocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Thought) == "" {
		writeError(w, http.StatusBadRequest, "thought is required")
		return
	}

	gateway := svcctx.GatewayFrom(r.Context())
	if gateway == nil {
		writeError(w, http.StatusServiceUnavailable, "assist gateway not initialized")
		return
	}

	words := gateway.RecommendVocabulary(r.Context(), req.Thought)
	if words == nil {
		words = []book.VocabularyRecommendation{}
	}
	writeJSON(w, http.StatusOK, VocabularyResponse{Words: words})
}

func (e *VocabularyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "vocabulary <thought>",
		Short: "Recommend evocative words for a thought or feeling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp VocabularyResponse
			if err := client.Post(ctx, "/assist/vocabulary", VocabularyRequest{Thought: args[0]}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
