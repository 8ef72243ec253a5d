package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	service "github.com/okian/attendsync/internal/app"
	"github.com/okian/attendsync/internal/domain/model"
	"github.com/okian/attendsync/pkg/logger"
)

// ReconcileDependencies defines the interface for running a reconciliation.
type ReconcileDependencies interface {
	Reconcile(ctx context.Context, in service.Input) (*service.Run, error)
}

// reconcileRequest is the body of POST /reconcile.
type reconcileRequest struct {
	MatchThreshold    *float64       `json:"match_threshold"`
	DurationThreshold *float64       `json:"duration_threshold"`
	SourceRecords     []sourceRecord `json:"source_records"`
	Roster            []rosterEntry  `json:"roster"`
}

type sourceRecord struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// rosterEntry carries either a full name or its given/family parts.
type rosterEntry struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func (e rosterEntry) fullName() string {
	if name := strings.TrimSpace(e.FullName); name != "" {
		return name
	}
	return model.FullName(e.FirstName, e.LastName)
}

func (r reconcileRequest) input() (service.Input, error) {
	in := service.Input{
		MatchThreshold:    r.MatchThreshold,
		DurationThreshold: r.DurationThreshold,
		Entries:           make([]model.TargetEntry, len(r.Roster)),
		Records:           make([]model.SourceRecord, 0, len(r.SourceRecords)),
	}
	for i, e := range r.Roster {
		in.Entries[i] = model.TargetEntry{FullName: e.fullName()}
	}
	for i, s := range r.SourceRecords {
		if s.Duration < 0 {
			return service.Input{}, fmt.Errorf("%w: source_records[%d]: negative duration", ErrBadRequest, i)
		}
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		in.Records = append(in.Records, model.SourceRecord{Name: name, Duration: s.Duration})
	}
	return in, nil
}

type entryResponse struct {
	FullName string       `json:"full_name"`
	Status   model.Status `json:"status"`
}

type reconcileResponse struct {
	*Run
	Entries []entryResponse `json:"entries"`
}

// ReconcileHandler handles reconcile requests.
type ReconcileHandler struct {
	deps         ReconcileDependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(deps ReconcileDependencies, maxBodyBytes int64, l logger.Logger) *ReconcileHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	if l == nil {
		l = logger.Nop()
	}
	return &ReconcileHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandlePostReconcile handles POST /reconcile requests.
func (h *ReconcileHandler) HandlePostReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req reconcileRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	run, err := h.deps.Reconcile(r.Context(), in)
	if err != nil {
		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error(r.Context(), "reconcile request failed", logger.Error(err))
		}
		writeError(w, status, code, err)
		return
	}

	resp := reconcileResponse{Run: run, Entries: make([]entryResponse, len(in.Entries))}
	for i, e := range in.Entries {
		resp.Entries[i] = entryResponse{FullName: e.FullName, Status: e.Status}
	}
	writeJSON(w, http.StatusOK, resp)
}
