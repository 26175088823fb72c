package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// ApplyTOCRequest carries the chapter titles to install.
type ApplyTOCRequest struct {
	Titles []string `json:"titles"`
}

// ApplyTOCEndpoint handles POST /book/toc. It replaces every existing
// section with fresh empty ones, so callers warn before invoking it.
type ApplyTOCEndpoint struct{}

func (e *ApplyTOCEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/toc", e.handler
}

func (e *ApplyTOCEndpoint) RequiresInit() bool { return true }

func (e *ApplyTOCEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ApplyTOCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Titles) == 0 {
		writeError(w, http.StatusBadRequest, "titles is required")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.ApplyTableOfContents(req.Titles)
	writeJSON(w, http.StatusOK, session.Book().Sections)
}

func (e *ApplyTOCEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-toc <title>...",
		Short: "Replace all sections with the given chapter titles",
		Long: `Replace every section of the book with fresh empty sections,
one per title. Existing section content is discarded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp []book.Section
			if err := client.Post(ctx, "/book/toc", ApplyTOCRequest{Titles: args}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
