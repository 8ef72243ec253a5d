package attendance

import (
	"github.com/okian/attendsync/internal/domain/similarity"
	"github.com/okian/attendsync/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer sets the name similarity function.
func WithScorer(fn similarity.Func) Option {
	return func(e *Engine) {
		if fn != nil {
			e.scorer = fn
		}
	}
}

// WithWorkerCount resolves roster entries on up to count goroutines.
// Zero uses runtime.NumCPU(); negative values are ignored.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count >= 0 {
			e.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
