// Package duration accumulates attended minutes per export name.
//
// Names are compared with exact string equality: fuzzy matching has already
// chosen which export name belongs to a roster entry, and every record that
// carries that exact name (rejoins, reconnects) counts toward its total.
package duration

import "github.com/okian/attendsync/internal/domain/model"

// Total sums Duration over every record whose Name equals name.
func Total(name string, records []model.SourceRecord) float64 {
	var sum float64
	for _, r := range records {
		if r.Name == name {
			sum += r.Duration
		}
	}
	return sum
}

// Index holds precomputed totals and the distinct names of a record set.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	totals map[string]float64
	names  []string
}

// NewIndex builds an Index. Names keep their order of first appearance.
func NewIndex(records []model.SourceRecord) *Index {
	idx := &Index{totals: make(map[string]float64, len(records))}
	for _, r := range records {
		if _, seen := idx.totals[r.Name]; !seen {
			idx.names = append(idx.names, r.Name)
		}
		idx.totals[r.Name] += r.Duration
	}
	return idx
}

// Total returns the accumulated duration for name, or 0 when absent.
func (i *Index) Total(name string) float64 {
	return i.totals[name]
}

// Names returns the distinct names in order of first appearance. The caller
// must not modify the returned slice.
func (i *Index) Names() []string {
	return i.names
}

// Len reports the number of distinct names.
func (i *Index) Len() int {
	return len(i.names)
}
