// Package resolve picks the best-scoring candidate name for a query name.
package resolve

import "github.com/okian/attendsync/internal/domain/similarity"

// Match is an accepted correspondence between a query and a candidate.
type Match struct {
	Candidate string  // the winning candidate name
	Index     int     // position of Candidate in the candidate list
	Score     float64 // similarity in [0,100]
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithScorer sets the similarity function used to compare names.
func WithScorer(fn similarity.Func) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.score = fn
		}
	}
}

// Resolver selects the best candidate for a name. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	score similarity.Func
}

// New creates a Resolver using the default token-sort scorer unless overridden.
func New(opts ...Option) *Resolver {
	r := &Resolver{score: similarity.Score}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve scores query against every candidate in order and returns the
// highest-scoring one when its score is at least threshold. Ties keep the
// first candidate seen. An empty candidate list never matches.
func (r *Resolver) Resolve(query string, candidates []string, threshold float64) (Match, bool) {
	best := Match{Index: -1}
	for i, c := range candidates {
		s := r.score(query, c)
		if best.Index < 0 || s > best.Score {
			best = Match{Candidate: c, Index: i, Score: s}
		}
	}
	if best.Index < 0 || best.Score < threshold {
		return Match{}, false
	}
	return best, true
}
