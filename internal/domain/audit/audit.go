// Package audit renders the unmatched-attendee report.
package audit

import (
	"strconv"
	"strings"
)

// Report lists unmatched export names, one per line, in the given order,
// preceded by the match threshold used for the run.
func Report(unmatched []string, matchThreshold float64) string {
	var b strings.Builder
	b.WriteString("Match Threshold: ")
	b.WriteString(FormatThreshold(matchThreshold))
	b.WriteString("\n\nUnmatched Attendees:\n")
	for _, name := range unmatched {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatThreshold prints a threshold in its shortest decimal form.
func FormatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
