// Package display provides report output formatting for ytdigest.
package display

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/gauthierbraillon/ytdigest/internal/aggregator"
)

// Format selects how a report is written.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Errorf("unknown output format %q (use text, csv or json)", s)
	}
}

// TerminalFormatter formats report rows for terminal display.
type TerminalFormatter struct {
	// MaxFieldLen truncates long text fields in text output. Zero keeps them whole.
	MaxFieldLen int
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{MaxFieldLen: 300}
}

// FormatRecord formats a single report row for display.
func (f *TerminalFormatter) FormatRecord(rec aggregator.Record) string {
	cells := rec.Cells()
	lines := []string{fmt.Sprintf("[%s] %s", rec.VideoID, rec.Title)}

	// Link and title are already in the header.
	for i, col := range aggregator.Columns {
		if i == 0 || i == 2 {
			continue
		}
		value := f.TruncateText(strings.ReplaceAll(cells[i], "\n", " | "), f.MaxFieldLen)
		lines = append(lines, fmt.Sprintf("  %s: %s", col, value))
	}
	lines = append(lines, "  "+rec.Reference)

	return strings.Join(lines, "\n") + "\n"
}

// FormatReport formats every row of a report for display.
func (f *TerminalFormatter) FormatReport(report *aggregator.Report) string {
	if len(report.Records) == 0 {
		return "No videos to display.\n"
	}

	formatted := make([]string, 0, len(report.Records))
	for _, rec := range report.Records {
		formatted = append(formatted, f.FormatRecord(rec))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatProgress formats a progress line.
func (f *TerminalFormatter) FormatProgress(done, total int) string {
	return fmt.Sprintf("Processed %d of %d videos", done, total)
}

// FormatSummary formats the closing line of a run.
func (f *TerminalFormatter) FormatSummary(report *aggregator.Report) string {
	switch report.Status() {
	case aggregator.StatusCanceled:
		return fmt.Sprintf("Canceled after %d of %d links; %d videos reported.\n", report.Processed, report.Total, len(report.Records))
	case aggregator.StatusEmpty:
		return "No video data could be collected.\n"
	default:
		return fmt.Sprintf("Reported %d videos, skipped %d links.\n", len(report.Records), len(report.Notices))
	}
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}

// Write renders report to w in the given format.
func (f *TerminalFormatter) Write(w io.Writer, format Format, report *aggregator.Report) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatJSON:
		return WriteJSON(w, report)
	default:
		_, err := io.WriteString(w, f.FormatReport(report))
		return errors.Wrap(err, "write report")
	}
}

// WriteCSV writes a header row followed by one row per record. Cells are
// never truncated.
func WriteCSV(w io.Writer, report *aggregator.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(aggregator.Columns); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, rec := range report.Records {
		if err := cw.Write(rec.Cells()); err != nil {
			return errors.Wrapf(err, "write csv row for %s", rec.Reference)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *aggregator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encode report")
}
