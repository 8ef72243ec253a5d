// Package csvio reads meeting exports and rosters from CSV and writes the
// updated roster back.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/attendsync/internal/domain/model"
)

const utf8BOM = "\uFEFF"

// SourceOptions describe the layout of a meeting-platform export.
type SourceOptions struct {
	SkipRows       int    // metadata lines before the header
	NameColumn     string // attendee name header
	DurationColumn string // minutes attended header
}

// DefaultSourceOptions matches a Zoom participant report.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		SkipRows:       3,
		NameColumn:     "Name (original name)",
		DurationColumn: "Total duration (minutes)",
	}
}

// LoadSource parses export records. Rows without a name are skipped; an empty
// duration counts as 0. A negative or unparsable duration is an error.
func LoadSource(r io.Reader, opts SourceOptions) ([]model.SourceRecord, error) {
	br := bufio.NewReader(r)
	if err := skipLines(br, opts.SkipRows); err != nil {
		return nil, fmt.Errorf("source: skip metadata: %w", err)
	}

	cr := newReader(br)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("source: %w", ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("source: read header: %w", err)
	}
	header = cleanHeader(header)

	nameCol := columnIndex(header, opts.NameColumn)
	if nameCol < 0 {
		return nil, &ColumnError{Input: "source", Column: opts.NameColumn}
	}
	durCol := columnIndex(header, opts.DurationColumn)
	if durCol < 0 {
		return nil, &ColumnError{Input: "source", Column: opts.DurationColumn}
	}

	var records []model.SourceRecord
	for line := opts.SkipRows + 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: line %d: %w", line, err)
		}
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}
		d, err := parseDuration(cell(row, durCol))
		if err != nil {
			return nil, fmt.Errorf("source: line %d: %w", line, err)
		}
		records = append(records, model.SourceRecord{Name: name, Duration: d})
	}
	return records, nil
}

// LoadSourceFile opens path and parses it with LoadSource.
func LoadSourceFile(path string, opts SourceOptions) ([]model.SourceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadSource(f, opts)
}

func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	return d, nil
}

func skipLines(br *bufio.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// columnIndex finds name in header, exactly first and then ignoring case.
func columnIndex(header []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range header {
		if h == name {
			return i
		}
	}
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
