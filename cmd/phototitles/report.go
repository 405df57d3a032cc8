package main

import (
	"fmt"
	"io"
	"strconv"

	"phototitles/internal/library"
	"phototitles/internal/migrate"
	"phototitles/internal/titles"
)

// terminalReporter writes run progress for an operator at a terminal.
type terminalReporter struct {
	out      io.Writer
	colorize bool
}

func newTerminalReporter(out io.Writer) *terminalReporter {
	return &terminalReporter{out: out, colorize: shouldColorize(out)}
}

func (r *terminalReporter) Summary(summary titles.Summary) {
	fmt.Fprintln(r.out)
	for _, line := range renderSectionHeader(summary.Label+" library", r.colorize) {
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintln(r.out, renderSummaryTable(summary))
}

func (r *terminalReporter) Result(step string, result titles.Result) {
	fmt.Fprintln(r.out)
	switch step {
	case migrate.StepCopy:
		fmt.Fprintf(r.out, "%d of %d titled images in the old library matched the new library; %d titles were copied where the new library had none.\n",
			result.Matched, result.Inspected, result.Updated)
	case migrate.StepFill:
		fmt.Fprintf(r.out, "%d titles were set in the new library based on the file names.\n", result.Updated)
	default:
		fmt.Fprintf(r.out, "%s: %d updated\n", step, result.Updated)
	}
	if len(result.Trace) > 0 {
		fmt.Fprintln(r.out, renderTraceTable(result.Trace))
	}
}

func (r *terminalReporter) Notice(message string) {
	fmt.Fprintln(r.out, message)
}

func renderSummaryTable(summary titles.Summary) string {
	rows := [][]string{
		{"Image versions", strconv.Itoa(summary.Total)},
		{"With titles", strconv.Itoa(summary.WithTitle)},
		{"Without titles", strconv.Itoa(summary.WithoutTitle)},
		{"Absent title stored as", conventionLabel(summary.Convention)},
	}
	return renderTable([]string{"Versions", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func renderTraceTable(trace []titles.Change) string {
	rows := make([][]string, 0, len(trace))
	for _, change := range trace {
		rows = append(rows, []string{change.UUID, change.FileName, change.Before, change.After, yesNo(change.Updated)})
	}
	return renderTable([]string{"UUID", "File", "Before", "After", "Updated"}, rows, nil)
}

func conventionLabel(convention library.AbsentConvention) string {
	if convention == library.AbsentIsEmptyString {
		return "empty string"
	}
	return "NULL"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
