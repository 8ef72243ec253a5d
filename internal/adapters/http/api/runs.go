package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/attendsync/internal/adapters/repository"
)

// RunsDependencies defines the interface for reading run history.
type RunsDependencies interface {
	Run(ctx context.Context, id string) (*Run, error)
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// RunsHandler handles run history requests.
type RunsHandler struct {
	deps RunsDependencies
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps RunsDependencies) *RunsHandler {
	return &RunsHandler{deps: deps}
}

// HandleListRuns handles GET /runs?limit=N requests.
func (h *RunsHandler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid limit %q", ErrBadRequest, v))
			return
		}
		limit = n
	}

	runs, err := h.deps.Runs(r.Context(), limit)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	out := make([]repository.Summary, len(runs))
	for i, run := range runs {
		out[i] = run.Summary()
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetRun handles GET /runs/{id} requests.
func (h *RunsHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	run, err := h.deps.Run(r.Context(), id)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
