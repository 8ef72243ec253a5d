package service

import (
	"github.com/okian/attendsync/internal/adapters/csvio"
	"github.com/okian/attendsync/internal/adapters/repository"
	"github.com/okian/attendsync/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThresholds sets the default match and duration thresholds.
func WithThresholds(match, duration float64) Option {
	return func(s *Service) {
		s.thresholds.Match = match
		s.thresholds.Duration = duration
	}
}

// WithScorer selects the similarity algorithm by name (token_sort, ratio).
func WithScorer(name string) Option {
	return func(s *Service) {
		s.scorerName = name
	}
}

// WithWorkerCount sets how many goroutines resolve roster entries.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count >= 0 {
			s.workerCount = count
		}
	}
}

// WithHistoryCapacity bounds the default run store.
func WithHistoryCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyCapacity = n
		}
	}
}

// WithStore replaces the default in-memory run store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSourceOptions sets the export layout used by ReconcileFiles.
func WithSourceOptions(opts csvio.SourceOptions) Option {
	return func(s *Service) {
		s.sourceOpts = opts
	}
}

// WithRosterOptions sets the roster columns used by ReconcileFiles.
func WithRosterOptions(opts csvio.RosterOptions) Option {
	return func(s *Service) {
		s.rosterOpts = opts
	}
}

// WithIDGenerator overrides run ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}
