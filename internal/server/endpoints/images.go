package endpoints

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/book"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// AttachImageRequest carries base64 image bytes for a section.
type AttachImageRequest struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type,omitempty"`
}

// AttachImageEndpoint handles POST /book/sections/{id}/images.
type AttachImageEndpoint struct{}

func (e *AttachImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/book/sections/{id}/images", e.handler
}

func (e *AttachImageEndpoint) RequiresInit() bool { return true }

func (e *AttachImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "section id is required")
		return
	}

	var req AttachImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Data == "" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "data is not valid base64")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	img, ok := session.AttachImage(id, data, req.MimeType)
	if !ok {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (e *AttachImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <section-id> <file>",
		Short: "Attach an image file to a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			req := AttachImageRequest{
				Data:     base64.StdEncoding.EncodeToString(data),
				MimeType: mimeFromExt(args[1]),
			}

			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.BookImage
			if err := client.Post(ctx, "/book/sections/"+args[0]+"/images", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

func mimeFromExt(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// ResizeImageRequest names the display size to apply.
type ResizeImageRequest struct {
	Size string `json:"size"`
}

// ResizeImageEndpoint handles PATCH /book/sections/{id}/images/{img}.
type ResizeImageEndpoint struct{}

func (e *ResizeImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/book/sections/{id}/images/{img}", e.handler
}

func (e *ResizeImageEndpoint) RequiresInit() bool { return true }

func (e *ResizeImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	imgID := r.PathValue("img")

	var req ResizeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !book.ValidImageSize(book.ImageSize(req.Size)) {
		writeError(w, http.StatusBadRequest, "size must be one of sm, md, lg, full")
		return
	}

	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.SetImageSize(id, imgID, book.ImageSize(req.Size))
	writeJSON(w, http.StatusOK, session.Book())
}

func (e *ResizeImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <section-id> <image-id> <size>",
		Short: "Set an image's display size (sm, md, lg, full)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp book.Book
			path := "/book/sections/" + args[0] + "/images/" + args[1]
			if err := client.Patch(ctx, path, ResizeImageRequest{Size: args[2]}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DeleteImageEndpoint handles DELETE /book/sections/{id}/images/{img}.
type DeleteImageEndpoint struct{}

func (e *DeleteImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/book/sections/{id}/images/{img}", e.handler
}

func (e *DeleteImageEndpoint) RequiresInit() bool { return true }

func (e *DeleteImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session := svcctx.SessionFrom(r.Context())
	if session == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	session.RemoveImage(r.PathValue("id"), r.PathValue("img"))
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <section-id> <image-id>",
		Short: "Remove an image from a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			return client.Delete(ctx, "/book/sections/"+args[0]+"/images/"+args[1])
		},
	}
}
