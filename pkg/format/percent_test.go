package format

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{82.83729073202757, "82.84%"},
		{100, "100.00%"},
		{0, "0.00%"},
		{0.004, "0.00%"},
		{99.999, "100.00%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}

func TestRange(t *testing.T) {
	if got := Range(1, 3); got != "1-3" {
		t.Errorf("Range(1, 3) = %s, expected 1-3", got)
	}
	if got := Range(0, 0); got != "0" {
		t.Errorf("Range(0, 0) = %s, expected 0", got)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000, "10,000"},
		{1000000, "1,000,000"},
		{-123456, "-123,456"},
	}

	for _, tt := range tests {
		if got := Count(tt.value); got != tt.expected {
			t.Errorf("Count(%d) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}
