package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"astrocopy/internal/astro"
	"astrocopy/internal/workflow"
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

// renderSummary tabulates planned records per observation.
func renderSummary(result *workflow.Result) string {
	title := cases.Title(language.Und)
	headers := []string{"Observation", "Dates", "Accepted", "Rejected", "Processed"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}

	var rows [][]string
	var totalAccepted, totalRejected, totalProcessed int
	for _, og := range astro.Group(result.Files) {
		var accepted, rejected, processed int
		for _, dg := range og.Dates {
			for _, cg := range dg.Captures {
				for _, f := range cg.Files {
					switch f.Status() {
					case "processed":
						processed++
					case "rejected":
						rejected++
					case "accepted":
						accepted++
					}
				}
			}
		}
		totalAccepted += accepted
		totalRejected += rejected
		totalProcessed += processed
		rows = append(rows, []string{
			title.String(og.Name),
			strconv.Itoa(len(og.Dates)),
			strconv.Itoa(accepted),
			strconv.Itoa(rejected),
			strconv.Itoa(processed),
		})
	}
	rows = append(rows, []string{"Total", "", strconv.Itoa(totalAccepted), strconv.Itoa(totalRejected), strconv.Itoa(totalProcessed)})
	return renderTable(headers, rows, aligns)
}

// renderPlan lists every planned copy; scan-only runs print it instead of
// touching the archive.
func renderPlan(files astro.Files) string {
	headers := []string{"Status", "Source", "Target"}
	var rows [][]string
	for _, f := range files {
		if !f.Valid {
			continue
		}
		rows = append(rows, []string{f.Status(), f.SourcePath, f.TargetPath})
	}
	return renderTable(headers, rows, nil)
}
