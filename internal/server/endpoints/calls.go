package endpoints

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkroomhq/inkroom/internal/api"
	"github.com/inkroomhq/inkroom/internal/assist"
	"github.com/inkroomhq/inkroom/internal/svcctx"
)

// ListCallsEndpoint handles GET /assist/calls. Records are returned
// newest first.
type ListCallsEndpoint struct{}

func (e *ListCallsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/assist/calls", e.handler
}

func (e *ListCallsEndpoint) RequiresInit() bool { return true }

func (e *ListCallsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	callLog := svcctx.CallLogFrom(r.Context())
	if callLog == nil {
		writeError(w, http.StatusServiceUnavailable, "call log not initialized")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, callLog.List(limit))
}

func (e *ListCallsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent model calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/assist/calls"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp []assist.Call
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of calls to return (0 = all)")
	return cmd
}

// GetCallEndpoint handles GET /assist/calls/{id}.
type GetCallEndpoint struct{}

func (e *GetCallEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/assist/calls/{id}", e.handler
}

func (e *GetCallEndpoint) RequiresInit() bool { return true }

func (e *GetCallEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	callLog := svcctx.CallLogFrom(r.Context())
	if callLog == nil {
		writeError(w, http.StatusServiceUnavailable, "call log not initialized")
		return
	}

	call, ok := callLog.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "call not found")
		return
	}
	writeJSON(w, http.StatusOK, call)
}

func (e *GetCallEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a model call record by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp assist.Call
			if err := client.Get(ctx, "/assist/calls/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
