// Package output provides utilities for formatting and displaying odds reports.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/deck-odds/internal/report"
	"github.com/iwvelando/deck-odds/pkg/format"
)

// ApproximationNote explains the combined odds to readers.
const ApproximationNote = "Combined odds multiply the category odds as if they were independent. " +
	"Categories share the same hand, so this is an approximation, not the true joint probability."

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, r *report.Report) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Opening hand odds for deck %s ---\n", r.Deck.Name)
	_, _ = p.Fprintf(w, "Deck size %d | Hand size %d | Samples %d | Trials %d | Seed %d\n",
		r.Deck.DeckSize, r.Deck.HandSize, r.Samples, r.Trials, r.Seed)
	_, _ = fmt.Fprintf(w, "\n")

	nameWidth := len("Category")
	for _, row := range r.Rows {
		if len(row.Category) > nameWidth {
			nameWidth = len(row.Category)
		}
	}

	_, _ = fmt.Fprintf(w, "%-*s | Count | Range | Theoretical | Monte Carlo | Verdict\n", nameWidth, "Category")
	_, _ = fmt.Fprintf(w, "%s | _____ | _____ | ___________ | ___________ | _______\n", strings.Repeat("_", nameWidth))
	for _, row := range r.Rows {
		_, _ = fmt.Fprintf(w, "%-*s | %5d | %5s | %11s | %11s | %s\n",
			nameWidth, row.Category, row.Count, format.Range(row.Min, row.Max),
			format.Percent(row.Exact), format.Percent(row.MonteCarlo), row.Verdict.Text)
	}

	_, _ = fmt.Fprintf(w, "\nCombined: theoretical %s, Monte Carlo %s (zero policy: %s)\n",
		format.Percent(r.ExactCombined), format.Percent(r.MonteCarloCombined), r.ZeroPolicy)
	_, _ = fmt.Fprintf(w, "%s\n", ApproximationNote)

	if len(r.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range r.Warnings {
			_, _ = fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	if r.Advice != "" {
		_, _ = fmt.Fprintf(w, "\nAdvice:\n%s\n", r.Advice)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, r *report.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"category", "count", "min", "max", "theoretical", "monte_carlo", "verdict"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Category,
			strconv.Itoa(row.Count),
			strconv.Itoa(row.Min),
			strconv.Itoa(row.Max),
			percentField(row.Exact),
			percentField(row.MonteCarlo),
			row.Verdict.Text,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	combined := []string{"Combined", "", "", "", percentField(r.ExactCombined), percentField(r.MonteCarloCombined), ""}
	if err := cw.Write(combined); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of a report.
func CsvString(r *report.Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		return ""
	}
	return buf.String()
}

func percentField(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
