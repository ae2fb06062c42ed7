package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/deck-odds/internal/deck"
	"github.com/iwvelando/deck-odds/internal/explain"
	"github.com/iwvelando/deck-odds/internal/probability"
	"github.com/iwvelando/deck-odds/internal/report"
)

func sampleReport() *report.Report {
	spec := deck.NewSpec("Test Deck", 40, 5, true, []deck.Category{
		{Name: "Starter", Count: 12, Min: 1, Max: 3},
		{Name: "Board Breaker", Count: 7, Min: 0, Max: 3},
	})
	return &report.Report{
		ID:         "7f7e1c1a-0000-4000-8000-000000000000",
		Deck:       spec,
		ZeroPolicy: probability.SkipZero,
		Samples:    10000,
		Trials:     10000,
		Seed:       42,
		Rows: []report.Row{
			{
				Category:   "Starter",
				Count:      12,
				Min:        1,
				Max:        3,
				Exact:      82.83729073202757,
				MonteCarlo: 82.61,
				Verdict:    explain.Explain("Starter", 82.83729073202757, 1, 3),
			},
			{
				Category:   "Board Breaker",
				Count:      7,
				Min:        0,
				Max:        3,
				Exact:      99.82127876864719,
				MonteCarlo: 99.8,
				Verdict:    explain.Explain("Board Breaker", 99.82127876864719, 0, 3),
			},
		},
		ExactCombined:      82.68936,
		MonteCarloCombined: 82.44,
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleReport())
	output := buf.String()

	expected := []string{
		"--- Opening hand odds for deck Test Deck ---",
		"Deck size 40 | Hand size 5 | Samples 10,000 | Trials 10,000 | Seed 42",
		"Category      | Count | Range | Theoretical | Monte Carlo | Verdict",
		"Starter       |    12 |   1-3 |      82.84% |      82.61% | You almost always open a Starter, with multiple options.",
		"Board Breaker |     7 |   0-3 |      99.82% |      99.80% | You often open a Board Breaker, useful against big boards.",
		"Combined: theoretical 82.69%, Monte Carlo 82.44% (zero policy: skip)",
		ApproximationNote,
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q\n%s", want, output)
		}
	}

	if strings.Contains(output, "Warnings:") || strings.Contains(output, "Advice:") {
		t.Errorf("PrettyFormat printed empty sections\n%s", output)
	}
}

func TestPrettyFormatWarningsAndAdvice(t *testing.T) {
	r := sampleReport()
	r.Warnings = []string{"Monte Carlo samples 100 is below the recommended minimum of 1000 - estimates will be noisy"}
	r.Advice = "AI error: upstream status 401"

	var buf bytes.Buffer
	PrettyFormat(&buf, r)
	output := buf.String()

	if !strings.Contains(output, "Warnings:\n  - Monte Carlo samples 100") {
		t.Errorf("PrettyFormat missing warnings\n%s", output)
	}
	if !strings.Contains(output, "Advice:\nAI error: upstream status 401") {
		t.Errorf("PrettyFormat missing advice\n%s", output)
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, sampleReport()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced invalid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}

	expectedHeader := []string{"category", "count", "min", "max", "theoretical", "monte_carlo", "verdict"}
	for i, col := range expectedHeader {
		if records[0][i] != col {
			t.Errorf("Header column %d = %s, expected %s", i, records[0][i], col)
		}
	}

	starter := records[1]
	if starter[0] != "Starter" || starter[1] != "12" || starter[2] != "1" || starter[3] != "3" {
		t.Errorf("Unexpected Starter record %v", starter)
	}
	if starter[4] != "82.84" || starter[5] != "82.61" {
		t.Errorf("Unexpected Starter percentages %v", starter)
	}
	if !strings.Contains(starter[6], "Starter, with multiple options") {
		t.Errorf("Verdict with commas not preserved: %q", starter[6])
	}

	combined := records[3]
	if combined[0] != "Combined" || combined[4] != "82.69" || combined[5] != "82.44" {
		t.Errorf("Unexpected combined record %v", combined)
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	if CsvString(r) != buf.String() {
		t.Errorf("CsvString does not match CsvFormat output")
	}
}

func TestCsvFormatEmptyReport(t *testing.T) {
	r := &report.Report{}
	lines := strings.Split(strings.TrimSpace(CsvString(r)), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected header and combined lines, got %d: %v", len(lines), lines)
	}
}
