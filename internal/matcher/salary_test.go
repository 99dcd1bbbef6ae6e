package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expectation string
		offered     string
		want        float64
	}{
		{"ceiling covers expectation", "50000", "40000-60000", 1.0},
		{"within 80 percent", "50k", "30k-45k", 0.8},
		{"within 60 percent", "50k", "20k-32k", 0.6},
		{"far below", "50k", "10k-20k", 0.3},
		{"lakh units", "5 lakh", "3-4 lakh", 0.8},
		{"missing expectation", "", "50k", 0.7},
		{"unparsable expectation", "negotiable", "50k", 0.7},
		{"unparsable range", "50k", "competitive", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Salary(tt.expectation, tt.offered))
		})
	}
}

func TestParseSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		last bool
		want float64
		ok   bool
	}{
		{"commas removed", "1,20,000", false, 120000, true},
		{"upper case k", "50 K per year", false, 50000, true},
		{"currency symbol", "$80,000", false, 80000, true},
		{"k inside a word is not a unit", "100 per week", false, 100, true},
		{"decimal lakh", "4.5 lakh", false, 45000, true},
		{"first of range", "40k-60k", false, 40000, true},
		{"last of range", "40k-60k", true, 60000, true},
		{"no digits", "DOE", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parseAmount(tt.in, tt.last).Get()
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseOr(t *testing.T) {
	assert.Equal(t, 5, ParseOr("5+ years", ParseYears, -1))
	assert.Equal(t, -1, ParseOr("several", ParseYears, -1))
	assert.InDelta(t, 60000.0, ParseOr("40k-60k", ParseSalaryCeiling, 0), 1e-9)
}
