// Package model contains domain models passed between layers.
package model

import "strings"

// Status is the attendance outcome written onto a roster entry.
type Status int

// Attendance statuses. StatusUnset is the zero value and never survives a
// successful reconciliation.
const (
	StatusUnset Status = iota
	StatusSuccessful
	StatusUnsuccessful
	StatusNoShow
)

// String returns the label persisted in the roster's status column.
func (s Status) String() string {
	switch s {
	case StatusSuccessful:
		return "Successful"
	case StatusUnsuccessful:
		return "Unsuccessful"
	case StatusNoShow:
		return "No Show"
	default:
		return ""
	}
}

// ParseStatus maps a persisted label back to a Status. Unknown labels map to
// StatusUnset.
func ParseStatus(label string) Status {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "successful":
		return StatusSuccessful
	case "unsuccessful":
		return StatusUnsuccessful
	case "no show", "noshow", "no_show":
		return StatusNoShow
	default:
		return StatusUnset
	}
}

// MarshalText implements encoding.TextMarshaler so statuses serialize as labels.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	*s = ParseStatus(string(b))
	return nil
}

// SourceRecord is one duration-bearing row of the meeting-platform export.
// The same Name may appear on several records when an attendee rejoined.
type SourceRecord struct {
	Name     string  // attendee display name as exported
	Duration float64 // minutes attended in this segment, >= 0
}

// TargetEntry is one roster row awaiting an attendance decision.
type TargetEntry struct {
	FullName string
	Status   Status
}

// Correspondence links a roster name to the export name it resolved to.
type Correspondence struct {
	TargetName string
	SourceName string
	Score      float64
}

// FullName joins given and family names with a single space. Surrounding
// whitespace on either part is dropped; a missing part yields just the other.
func FullName(given, family string) string {
	given = strings.TrimSpace(given)
	family = strings.TrimSpace(family)
	switch {
	case given == "":
		return family
	case family == "":
		return given
	default:
		return given + " " + family
	}
}
