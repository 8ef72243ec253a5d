// Package similarity scores how alike two person names are on a 0..100 scale.
//
// Names are normalized before comparison:
//  1. Unicode NFKC normalization
//  2. Case folding
//  3. Whitespace runs collapsed to a single space and trimmed
//
// The default scorer sorts the whitespace-separated tokens of each name before
// comparing, so "Smith Jane" and "Jane Smith" score 100. The comparison itself
// is the normalized Indel similarity: 2*LCS / (len(a)+len(b)), over runes.
package similarity

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxScore = 100

// Scorer names accepted by ByName.
const (
	NameTokenSort = "token_sort"
	NameRatio     = "ratio"
)

// Func scores two names. Implementations must be pure and return a value in
// [0,100].
type Func func(a, b string) float64

// foldPool holds transformer chains; a chain carries state and must not be
// shared between goroutines.
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, cases.Fold())
	},
}

// Normalize returns the canonical comparison form of a name.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}

	return strings.Join(strings.Fields(out), " ")
}

// Score is the default scorer: token-sort ratio.
func Score(a, b string) float64 {
	return TokenSortRatio(a, b)
}

// TokenSortRatio compares names after sorting their tokens, making it
// insensitive to given/family name order.
func TokenSortRatio(a, b string) float64 {
	return indelRatio(sortTokens(Normalize(a)), sortTokens(Normalize(b)))
}

// Ratio compares the normalized names as-is.
func Ratio(a, b string) float64 {
	return indelRatio(Normalize(a), Normalize(b))
}

// ByName returns the scorer registered under name. An empty name selects the
// default.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameTokenSort:
		return TokenSortRatio, nil
	case NameRatio:
		return Ratio, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
	}
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return s
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func indelRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	switch {
	case total == 0:
		return maxScore
	case len(ra) == 0 || len(rb) == 0:
		return 0
	}
	return maxScore * float64(2*lcsLength(ra, rb)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence using two
// rolling rows.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
