package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/attendsync/internal/domain/model"
)

// RosterOptions describe the layout of a roster export.
type RosterOptions struct {
	FirstNameColumn string
	LastNameColumn  string
	// LegacyStatusColumn is renamed to StatusColumn when StatusColumn is absent.
	LegacyStatusColumn string
	StatusColumn       string
	// FullNameColumn receives the derived "first last" name.
	FullNameColumn string
}

// DefaultRosterOptions matches a SabaCloud roster export.
func DefaultRosterOptions() RosterOptions {
	return RosterOptions{
		FirstNameColumn:    "First Name",
		LastNameColumn:     "Last Name",
		LegacyStatusColumn: "Audience Subtype",
		StatusColumn:       "Attendance Status",
		FullNameColumn:     "Full Name",
	}
}

// Roster is a loaded roster table. All original columns are preserved; the
// full-name and status columns are added or renamed as needed.
type Roster struct {
	header    []string
	rows      [][]string
	fullCol   int
	statusCol int
	entries   []model.TargetEntry
}

// LoadRoster parses a roster and derives one TargetEntry per row.
func LoadRoster(r io.Reader, opts RosterOptions) (*Roster, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("roster: %w", ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("roster: read header: %w", err)
	}
	header = cleanHeader(header)

	firstCol := columnIndex(header, opts.FirstNameColumn)
	if firstCol < 0 {
		return nil, &ColumnError{Input: "roster", Column: opts.FirstNameColumn}
	}
	lastCol := columnIndex(header, opts.LastNameColumn)
	if lastCol < 0 {
		return nil, &ColumnError{Input: "roster", Column: opts.LastNameColumn}
	}

	ro := &Roster{header: header}
	ro.statusCol = columnIndex(header, opts.StatusColumn)
	if ro.statusCol < 0 {
		if legacy := columnIndex(header, opts.LegacyStatusColumn); legacy >= 0 {
			ro.header[legacy] = opts.StatusColumn
			ro.statusCol = legacy
		} else {
			ro.header = append(ro.header, opts.StatusColumn)
			ro.statusCol = len(ro.header) - 1
		}
	}
	ro.fullCol = columnIndex(ro.header, opts.FullNameColumn)
	if ro.fullCol < 0 {
		ro.header = append(ro.header, opts.FullNameColumn)
		ro.fullCol = len(ro.header) - 1
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: line %d: %w", line, err)
		}
		row = pad(row, len(ro.header))
		full := model.FullName(row[firstCol], row[lastCol])
		row[ro.fullCol] = full
		ro.rows = append(ro.rows, row)
		ro.entries = append(ro.entries, model.TargetEntry{FullName: full})
	}
	return ro, nil
}

// LoadRosterFile opens path and parses it with LoadRoster.
func LoadRosterFile(path string, opts RosterOptions) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadRoster(f, opts)
}

// Entries returns a fresh copy of the derived entries, all StatusUnset.
func (r *Roster) Entries() []model.TargetEntry {
	out := make([]model.TargetEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of data rows.
func (r *Roster) Len() int { return len(r.rows) }

// Header returns the output header.
func (r *Roster) Header() []string { return r.header }

// Row returns data row i as it will be written.
func (r *Roster) Row(i int) []string { return r.rows[i] }

// Apply writes decided statuses into the status column by position. Entries
// still StatusUnset keep the row's previous value.
func (r *Roster) Apply(entries []model.TargetEntry) error {
	if len(entries) != len(r.rows) {
		return fmt.Errorf("%w: %d entries, %d rows", ErrCardinality, len(entries), len(r.rows))
	}
	for i, e := range entries {
		if e.Status == model.StatusUnset {
			continue
		}
		r.rows[i][r.statusCol] = e.Status.String()
	}
	return nil
}

// Write emits the header and all rows as CSV.
func (r *Roster) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.header); err != nil {
		return fmt.Errorf("write roster header: %w", err)
	}
	if err := cw.WriteAll(r.rows); err != nil {
		return fmt.Errorf("write roster rows: %w", err)
	}
	return nil
}

// WriteRosterFile writes the roster to path, replacing any existing file.
func WriteRosterFile(path string, r *Roster) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create roster output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close roster output: %w", cerr)
		}
	}()
	return r.Write(f)
}

// WriteTextFile writes a plain-text report to path.
func WriteTextFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // report is meant to be readable
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
