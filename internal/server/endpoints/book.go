package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/editor"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// GetBookEndpoint handles GET /book.
type GetBookEndpoint struct{}

func (e *GetBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/book", e.handler
}

func (e *GetBookEndpoint) RequiresInit() bool { return true }

func (e *GetBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}
	writeJSON(w, http.StatusOK, session.Book())
}

func (e *GetBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current book",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Book
			if err := client.Get(ctx, "/book", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// UpdateBookRequest carries partial book metadata updates. Absent
// fields are left untouched.
type UpdateBookRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	AIPersona      *string `json:"ai_persona,omitempty"`
	TargetAudience *string `json:"target_audience,omitempty"`
}

// UpdateBookEndpoint handles PATCH /book.
type UpdateBookEndpoint struct{}

func (e *UpdateBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/book", e.handler
}

func (e *UpdateBookEndpoint) RequiresInit() bool { return true }

func (e *UpdateBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	if req.Title != nil {
		session.SetTitle(*req.Title)
	}
	if req.Description != nil {
		session.SetDescription(*req.Description)
	}
	if req.AIPersona != nil {
		session.SetPersona(*req.AIPersona)
	}
	if req.TargetAudience != nil {
		session.SetTargetAudience(*req.TargetAudience)
	}

	writeJSON(w, http.StatusOK, session.Book())
}

func (e *UpdateBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	var title, description, persona, audience string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update book metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := UpdateBookRequest{}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("persona") {
				req.AIPersona = &persona
			}
			if cmd.Flags().Changed("audience") {
				req.TargetAudience = &audience
			}

			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Book
			if err := client.Patch(ctx, "/book", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&description, "description", "", "Book description")
	cmd.Flags().StringVar(&persona, "persona", "", "Writing assistant persona")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	return cmd
}

// SaveStateEndpoint handles GET /book/save-state.
type SaveStateEndpoint struct{}

func (e *SaveStateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/book/save-state", e.handler
}

func (e *SaveStateEndpoint) RequiresInit() bool { return true }

func (e *SaveStateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}
	writeJSON(w, http.StatusOK, session.SaveState())
}

func (e *SaveStateEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "save-state",
		Short: "Show the autosave indicator state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp editor.SaveState
			if err := client.Get(ctx, "/book/save-state", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
