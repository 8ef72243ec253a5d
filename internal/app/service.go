// Package service wires CSV I/O, the attendance engine, run history and
// metrics into the operations used by the CLI and the HTTP API.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/attendsync/internal/adapters/csvio"
	"github.com/okian/attendsync/internal/adapters/repository"
	"github.com/okian/attendsync/internal/domain/attendance"
	"github.com/okian/attendsync/internal/domain/audit"
	"github.com/okian/attendsync/internal/domain/model"
	"github.com/okian/attendsync/internal/domain/similarity"
	"github.com/okian/attendsync/pkg/logger"
	"github.com/okian/attendsync/pkg/metrics"
)

// Row kinds for the rows_loaded metric.
const (
	rowsSource = "source"
	rowsRoster = "roster"
)

// Run is a completed reconciliation as kept in history.
type Run = repository.Run

// Input is one in-memory reconciliation request. Nil thresholds fall back to
// the service defaults.
type Input struct {
	Entries           []model.TargetEntry
	Records           []model.SourceRecord
	MatchThreshold    *float64
	DurationThreshold *float64
}

// Files names the CSV inputs and outputs of a file-based run. Empty output
// paths are not written.
type Files struct {
	Source    string
	Roster    string
	Output    string
	Unmatched string
}

// Service runs reconciliations and keeps their history.
type Service struct {
	logger          logger.Logger
	thresholds      attendance.Thresholds
	scorerName      string
	scorer          similarity.Func
	workerCount     int
	historyCapacity int
	sourceOpts      csvio.SourceOptions
	rosterOpts      csvio.RosterOptions
	store           repository.Store
	newID           func() string
}

// New constructs a Service. It fails on an unknown scorer or invalid default
// thresholds.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		logger:          logger.Nop(),
		thresholds:      attendance.Thresholds{Match: 55, Duration: 10},
		scorerName:      similarity.NameTokenSort,
		workerCount:     1,
		historyCapacity: repository.DefaultCapacity,
		sourceOpts:      csvio.DefaultSourceOptions(),
		rosterOpts:      csvio.DefaultRosterOptions(),
		newID:           uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	scorer, err := similarity.ByName(s.scorerName)
	if err != nil {
		return nil, err
	}
	s.scorer = scorer

	if err := s.thresholds.Validate(); err != nil {
		return nil, err
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithCapacity(s.historyCapacity))
	}
	return s, nil
}

// Thresholds returns the default thresholds.
func (s *Service) Thresholds() attendance.Thresholds {
	return s.thresholds
}

// Reconcile decides a status for every entry of in, writing it into
// in.Entries, and records the run. Malformed entries do not fail the run;
// they are listed in Run.Malformed.
func (s *Service) Reconcile(ctx context.Context, in Input) (*Run, error) {
	started := time.Now()

	th := s.thresholds
	if in.MatchThreshold != nil {
		th.Match = *in.MatchThreshold
	}
	if in.DurationThreshold != nil {
		th.Duration = *in.DurationThreshold
	}
	if err := validateRecords(in.Records); err != nil {
		metrics.RecordRun(metrics.OutcomeError, time.Since(started).Seconds())
		return nil, err
	}

	id := s.newID()
	log := s.logger.With(logger.String("run", id))

	engine := attendance.New(
		attendance.WithScorer(s.scorer),
		attendance.WithWorkerCount(s.workerCount),
		attendance.WithLogger(log),
	)
	metrics.SetResolveWorkers(engine.Workers(len(in.Entries)))

	res, err := engine.Decide(ctx, in.Entries, in.Records, th)
	if res == nil {
		metrics.RecordRun(metrics.OutcomeError, time.Since(started).Seconds())
		log.Error(ctx, "reconcile failed", logger.Error(err))
		return nil, err
	}

	outcome := metrics.OutcomeOK
	malformed := make([]string, 0, len(res.Malformed))
	for _, m := range res.Malformed {
		log.Warn(ctx, "malformed roster entry", logger.Int("row", m.Row), logger.String("reason", m.Reason))
		malformed = append(malformed, m.Error())
	}
	if len(malformed) > 0 {
		outcome = metrics.OutcomeMalformed
		metrics.RecordMalformedEntries(len(malformed))
	}

	counts := make(map[string]int, 3)
	for _, d := range res.Decisions {
		if d.Status == model.StatusUnset {
			continue
		}
		counts[d.Status.String()]++
		metrics.RecordDecision(d.Status.String())
		if d.Matched {
			metrics.RecordMatchScore(d.Score)
		}
	}
	metrics.SetUnmatchedNames(len(res.Unmatched))

	for _, name := range res.Unmatched {
		log.Debug(ctx, "unmatched attendee", logger.String("attendee", name))
	}

	run := Run{
		ID:                id,
		StartedAt:         started.UTC(),
		FinishedAt:        time.Now().UTC(),
		Scorer:            s.scorerName,
		MatchThreshold:    th.Match,
		DurationThreshold: th.Duration,
		SourceRecords:     len(in.Records),
		Decisions:         res.Decisions,
		Unmatched:         append([]string{}, res.Unmatched...),
		Report:            audit.Report(res.Unmatched, th.Match),
		Counts:            counts,
	}
	if len(malformed) > 0 {
		run.Malformed = malformed
	}

	if err := s.store.Save(ctx, run); err != nil {
		metrics.RecordRun(metrics.OutcomeError, time.Since(started).Seconds())
		return nil, fmt.Errorf("save run: %w", err)
	}

	elapsed := time.Since(started)
	metrics.RecordRun(outcome, elapsed.Seconds())
	log.Info(ctx, "reconcile finished",
		logger.Int("entries", len(res.Decisions)),
		logger.Int("successful", counts[model.StatusSuccessful.String()]),
		logger.Int("unsuccessful", counts[model.StatusUnsuccessful.String()]),
		logger.Int("no_show", counts[model.StatusNoShow.String()]),
		logger.Int("unmatched", len(res.Unmatched)),
		logger.Int("malformed", len(malformed)),
		logger.Duration("elapsed", elapsed),
	)
	return &run, nil
}

// ReconcileFiles loads the export and roster, reconciles them, and writes the
// updated roster and unmatched report.
func (s *Service) ReconcileFiles(ctx context.Context, f Files) (*Run, error) {
	records, err := csvio.LoadSourceFile(f.Source, s.sourceOpts)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsLoaded(rowsSource, len(records))

	roster, err := csvio.LoadRosterFile(f.Roster, s.rosterOpts)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsLoaded(rowsRoster, roster.Len())

	s.logger.Info(ctx, "inputs loaded",
		logger.String("source", f.Source),
		logger.Int("source_records", len(records)),
		logger.String("roster", f.Roster),
		logger.Int("roster_rows", roster.Len()),
	)

	entries := roster.Entries()
	run, err := s.Reconcile(ctx, Input{Entries: entries, Records: records})
	if err != nil {
		return nil, err
	}

	if err := roster.Apply(entries); err != nil {
		return nil, err
	}
	if f.Output != "" {
		if err := csvio.WriteRosterFile(f.Output, roster); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "updated roster written", logger.String("path", f.Output))
	}
	if f.Unmatched != "" {
		if err := csvio.WriteTextFile(f.Unmatched, run.Report); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "unmatched report written", logger.String("path", f.Unmatched))
	}
	return run, nil
}

// Run returns a recorded run by ID.
func (s *Service) Run(ctx context.Context, id string) (*Run, error) {
	run, err := s.store.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Runs returns up to limit recorded runs, newest first. limit <= 0 means all.
func (s *Service) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.store.List(ctx, limit)
}

func validateRecords(records []model.SourceRecord) error {
	for i, r := range records {
		if math.IsNaN(r.Duration) || math.IsInf(r.Duration, 0) || r.Duration < 0 {
			return fmt.Errorf("%w: record %d (%q): duration %v must be a finite value >= 0", ErrInvalidInput, i, r.Name, r.Duration)
		}
	}
	return nil
}
