// Package repository keeps the history of reconciliation runs.
package repository

import (
	"context"
	"time"

	"github.com/okian/attendsync/internal/domain/attendance"
)

// Run is one completed reconciliation.
type Run struct {
	ID                string                `json:"id"`
	StartedAt         time.Time             `json:"started_at"`
	FinishedAt        time.Time             `json:"finished_at"`
	Scorer            string                `json:"scorer"`
	MatchThreshold    float64               `json:"match_threshold"`
	DurationThreshold float64               `json:"duration_threshold"`
	SourceRecords     int                   `json:"source_records"`
	Decisions         []attendance.Decision `json:"decisions"`
	Unmatched         []string              `json:"unmatched"`
	Report            string                `json:"report"`
	Counts            map[string]int        `json:"counts"`
	Malformed         []string              `json:"malformed,omitempty"`
}

// Summary is the listing view of a Run without per-entry detail.
type Summary struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Entries    int            `json:"entries"`
	Unmatched  int            `json:"unmatched"`
	Malformed  int            `json:"malformed"`
	Counts     map[string]int `json:"counts"`
}

// Summary returns the listing view of r.
func (r Run) Summary() Summary {
	return Summary{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Entries:    len(r.Decisions),
		Unmatched:  len(r.Unmatched),
		Malformed:  len(r.Malformed),
		Counts:     r.Counts,
	}
}

// Store provides read/write access to run history.
type Store interface {
	// Save records run, replacing any run with the same ID.
	Save(ctx context.Context, run Run) error

	// Get returns the run with id or ErrRunNotFound.
	Get(ctx context.Context, id string) (Run, error)

	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Run, error)

	// Count returns the number of runs retained.
	Count(ctx context.Context) int
}
