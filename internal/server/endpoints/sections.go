package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// ListSectionsEndpoint handles GET /book/sections.
type ListSectionsEndpoint struct{}

func (e *ListSectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/book/sections", e.handler
}

func (e *ListSectionsEndpoint) RequiresInit() bool { return true }

func (e *ListSectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}
	writeJSON(w, http.StatusOK, session.Book().Sections)
}

func (e *ListSectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List book sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp []book.Section
			if err := client.Get(ctx, "/book/sections", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// AddSectionEndpoint handles POST /book/sections. The new section is
// appended with the default title and becomes active.
type AddSectionEndpoint struct{}

func (e *AddSectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/sections", e.handler
}

func (e *AddSectionEndpoint) RequiresInit() bool { return true }

func (e *AddSectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}
	sec := session.AddSection()
	writeJSON(w, http.StatusCreated, sec)
}

func (e *AddSectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append a new section and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Section
			if err := client.Post(ctx, "/book/sections", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ReorderSectionsRequest names the source and destination indexes of a
// section move.
type ReorderSectionsRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderSectionsEndpoint handles POST /book/sections/reorder.
type ReorderSectionsEndpoint struct{}

func (e *ReorderSectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/sections/reorder", e.handler
}

func (e *ReorderSectionsEndpoint) RequiresInit() bool { return true }

func (e *ReorderSectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ReorderSectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.ReorderSections(req.From, req.To)
	writeJSON(w, http.StatusOK, session.Book().Sections)
}

func (e *ReorderSectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move a section from one index to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid from index: %s", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid to index: %s", args[1])
			}

			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp []book.Section
			if err := client.Post(ctx, "/book/sections/reorder", ReorderSectionsRequest{From: from, To: to}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ActiveSectionEndpoint handles GET /book/sections/active.
type ActiveSectionEndpoint struct{}

func (e *ActiveSectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/book/sections/active", e.handler
}

func (e *ActiveSectionEndpoint) RequiresInit() bool { return true }

func (e *ActiveSectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	sec, ok := session.ActiveSection()
	if !ok {
		writeError(w, http.StatusNotFound, "book has no sections")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (e *ActiveSectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the active section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Section
			if err := client.Get(ctx, "/book/sections/active", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ActivateSectionEndpoint handles POST /book/sections/{id}/activate.
type ActivateSectionEndpoint struct{}

func (e *ActivateSectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/sections/{id}/activate", e.handler
}

func (e *ActivateSectionEndpoint) RequiresInit() bool { return true }

func (e *ActivateSectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "section id is required")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.SetActiveSection(id)

	sec, ok := session.ActiveSection()
	if !ok {
		writeError(w, http.StatusNotFound, "book has no sections")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (e *ActivateSectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Make a section the editing target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Section
			if err := client.Post(ctx, "/book/sections/"+args[0]+"/activate", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// UpdateSectionRequest names the editable field and its new value.
type UpdateSectionRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateActiveSectionEndpoint handles PATCH /book/sections/active.
type UpdateActiveSectionEndpoint struct{}

func (e *UpdateActiveSectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/book/sections/active", e.handler
}

func (e *UpdateActiveSectionEndpoint) RequiresInit() bool { return true }

func (e *UpdateActiveSectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Field == "" {
		writeError(w, http.StatusBadRequest, "field is required")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.UpdateSectionField(req.Field, req.Value)

	sec, ok := session.ActiveSection()
	if !ok {
		writeError(w, http.StatusNotFound, "book has no sections")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (e *UpdateActiveSectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "update <field> <value>",
		Short: "Update a field of the active section",
		Long:  "Update the active section. Valid fields are title, subtitle, and content.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Section
			if err := client.Patch(ctx, "/book/sections/active", UpdateSectionRequest{Field: args[0], Value: args[1]}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// InsertTextRequest carries text for cursor insertion.
type InsertTextRequest struct {
	Text string `json:"text"`
}

// InsertTextEndpoint handles POST /book/sections/active/insert.
type InsertTextEndpoint struct{}

func (e *InsertTextEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/sections/active/insert", e.handler
}

func (e *InsertTextEndpoint) RequiresInit() bool { return true }

func (e *InsertTextEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req InsertTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.InsertTextAtCursor(req.Text)

	sec, ok := session.ActiveSection()
	if !ok {
		writeError(w, http.StatusNotFound, "book has no sections")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (e *InsertTextEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <text>",
		Short: "Append text to the active section's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Section
			if err := client.Post(ctx, "/book/sections/active/insert", InsertTextRequest{Text: args[0]}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
