package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	service "github.com/okian/attendsync/internal/app"
	"github.com/okian/attendsync/internal/domain/model"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderDecisions prints one line per roster entry.
func renderDecisions(run *service.Run) string {
	rows := make([][]string, 0, len(run.Decisions))
	for _, d := range run.Decisions {
		attendee, score, minutes := "-", "-", "-"
		if d.Matched {
			attendee = d.Source
			score = strconv.FormatFloat(d.Score, 'f', 1, 64)
			minutes = strconv.FormatFloat(d.Duration, 'f', -1, 64)
		}
		status := d.Status.String()
		if d.Status == model.StatusUnset {
			status = "(malformed)"
		}
		rows = append(rows, []string{strconv.Itoa(d.Row + 1), d.Target, attendee, score, minutes, status})
	}
	return renderTable(
		[]string{"#", "Roster name", "Attendee", "Score", "Minutes", "Status"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// renderSummary prints status counts, unmatched and malformed totals.
func renderSummary(run *service.Run) string {
	rows := [][]string{
		{model.StatusSuccessful.String(), strconv.Itoa(run.Counts[model.StatusSuccessful.String()])},
		{model.StatusUnsuccessful.String(), strconv.Itoa(run.Counts[model.StatusUnsuccessful.String()])},
		{model.StatusNoShow.String(), strconv.Itoa(run.Counts[model.StatusNoShow.String()])},
		{"Unmatched attendees", strconv.Itoa(len(run.Unmatched))},
	}
	if len(run.Malformed) > 0 {
		rows = append(rows, []string{"Malformed entries", strconv.Itoa(len(run.Malformed))})
	}
	return renderTable([]string{"Run " + run.ID, "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
