// Package attendance decides an attendance status for every roster entry.
//
// For each entry the engine resolves the entry's full name against the
// distinct export names, sums the matched name's durations and applies the
// duration threshold:
//
//	no correspondence            -> No Show
//	total < duration threshold   -> Unsuccessful
//	total >= duration threshold  -> Successful
//
// Export names never chosen by any entry are returned as unmatched.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/okian/attendsync/internal/domain/duration"
	"github.com/okian/attendsync/internal/domain/model"
	"github.com/okian/attendsync/internal/domain/resolve"
	"github.com/okian/attendsync/internal/domain/similarity"
	"github.com/okian/attendsync/internal/worker"
	"github.com/okian/attendsync/pkg/logger"
)

const maxMatchThreshold = 100

// Thresholds are the per-run operator settings.
type Thresholds struct {
	Match    float64 // minimum similarity, in [0,100]
	Duration float64 // minimum accumulated minutes for Successful, >= 0
}

// Validate reports ErrInvalidThreshold for out-of-range or non-finite values.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.Match) || t.Match < 0 || t.Match > maxMatchThreshold {
		return fmt.Errorf("%w: match threshold %v not in [0,100]", ErrInvalidThreshold, t.Match)
	}
	if math.IsNaN(t.Duration) || math.IsInf(t.Duration, 0) || t.Duration < 0 {
		return fmt.Errorf("%w: duration threshold %v must be a finite value >= 0", ErrInvalidThreshold, t.Duration)
	}
	return nil
}

// Decision is the audit trail for one roster entry.
type Decision struct {
	Row      int          `json:"row"`
	Target   string       `json:"target"`
	Source   string       `json:"source,omitempty"`
	Score    float64      `json:"score"`
	Duration float64      `json:"duration"`
	Status   model.Status `json:"status"`
	Matched  bool         `json:"matched"`
}

// Result is the outcome of one Decide call.
type Result struct {
	// Entries is the caller's slice with statuses written in place.
	Entries []model.TargetEntry
	// Decisions has one element per entry, in input order.
	Decisions []Decision
	// Unmatched lists export names no entry selected, in order of first appearance.
	Unmatched []string
	// Malformed lists entries skipped for lack of a full name, in input order.
	Malformed []*MalformedEntryError
}

// Correspondences returns the accepted target/source links in input order.
func (r *Result) Correspondences() []model.Correspondence {
	out := make([]model.Correspondence, 0, len(r.Decisions))
	for _, d := range r.Decisions {
		if d.Matched {
			out = append(out, model.Correspondence{TargetName: d.Target, SourceName: d.Source, Score: d.Score})
		}
	}
	return out
}

// Counts tallies decided statuses. Malformed entries count as StatusUnset.
func (r *Result) Counts() map[model.Status]int {
	counts := make(map[model.Status]int, 4)
	for _, d := range r.Decisions {
		counts[d.Status]++
	}
	return counts
}

// Engine applies the attendance rule. It keeps no per-run state, so one
// Engine may serve concurrent Decide calls.
type Engine struct {
	scorer      similarity.Func
	workerCount int
	logger      logger.Logger

	resolver *resolve.Resolver
	pool     *worker.Pool
}

// New constructs an Engine. Defaults: token-sort scorer, sequential resolution,
// no logging.
func New(opts ...Option) *Engine {
	e := &Engine{
		scorer:      similarity.Score,
		workerCount: 1,
		logger:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.resolver = resolve.New(resolve.WithScorer(e.scorer))
	e.pool = worker.NewPool(e.workerCount, worker.WithName("resolve"), worker.WithLogger(e.logger))
	return e
}

// Workers reports how many goroutines a run over n entries uses.
func (e *Engine) Workers(n int) int {
	return e.pool.Workers(n)
}

// Decide assigns a status to every entry, writing it into entries in place.
//
// Invalid thresholds fail with ErrInvalidThreshold before any entry is
// touched. Entries without a full name are left StatusUnset, reported in
// Result.Malformed, and the returned error joins one *MalformedEntryError per
// such entry; the Result is still complete for every other entry. An empty
// record set is not an error: every entry becomes No Show.
func (e *Engine) Decide(ctx context.Context, entries []model.TargetEntry, records []model.SourceRecord, th Thresholds) (*Result, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}

	idx := duration.NewIndex(records)
	candidates := idx.Names()

	decisions := make([]Decision, len(entries))
	malformed := make([]*MalformedEntryError, len(entries))

	err := e.pool.Run(ctx, len(entries), func(ctx context.Context, i int) error {
		name := entries[i].FullName
		if strings.TrimSpace(name) == "" {
			malformed[i] = &MalformedEntryError{Row: i, Reason: "empty full name"}
			decisions[i] = Decision{Row: i, Target: name}
			return nil
		}
		d := e.decide(ctx, i, name, candidates, idx, th)
		entries[i].Status = d.Status
		decisions[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Entries:   entries,
		Decisions: decisions,
		Unmatched: unmatched(candidates, decisions),
	}

	var errs []error
	for _, m := range malformed {
		if m != nil {
			res.Malformed = append(res.Malformed, m)
			errs = append(errs, m)
		}
	}
	return res, errors.Join(errs...)
}

func (e *Engine) decide(ctx context.Context, row int, name string, candidates []string, idx *duration.Index, th Thresholds) Decision {
	d := Decision{Row: row, Target: name}

	m, ok := e.resolver.Resolve(name, candidates, th.Match)
	if !ok {
		d.Status = model.StatusNoShow
		e.logger.Debug(ctx, "no match", logger.String("target", name))
		return d
	}

	d.Matched = true
	d.Source = m.Candidate
	d.Score = m.Score
	d.Duration = idx.Total(m.Candidate)
	if d.Duration >= th.Duration {
		d.Status = model.StatusSuccessful
	} else {
		d.Status = model.StatusUnsuccessful
	}

	e.logger.Debug(ctx, "matched",
		logger.String("target", name),
		logger.String("attendee", m.Candidate),
		logger.Float64("score", m.Score),
		logger.Float64("duration", d.Duration),
		logger.String("status", d.Status.String()),
	)
	return d
}

// unmatched reduces the per-entry selections into the names never chosen.
func unmatched(candidates []string, decisions []Decision) []string {
	selected := make(map[string]struct{}, len(decisions))
	for _, d := range decisions {
		if d.Matched {
			selected[d.Source] = struct{}{}
		}
	}
	var out []string
	for _, c := range candidates {
		if _, ok := selected[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
