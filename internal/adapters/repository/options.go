package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacity bounds how many runs are retained; the oldest are evicted first.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithGauge sets the callback that receives the retained run count after
// every change.
func WithGauge(fn func(int)) Option {
	return func(s *MemoryStore) {
		if fn != nil {
			s.gauge = fn
		}
	}
}
