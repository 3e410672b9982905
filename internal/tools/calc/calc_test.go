package calc

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/tools"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}
}

func TestCGPA(t *testing.T) {
	e := New()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"integer", "8", "8 CGPA = 76.00%"},
		{"decimal", "8.5", "8.5 CGPA = 80.75%"},
		{"zero", "0", "0 CGPA = 0.00%"},
		{"ten", "10", "10 CGPA = 95.00%"},
		{"out of range still computes", "12", "12 CGPA = 114.00%"},
		{"negative", "-1", "-1 CGPA = -9.50%"},
		{"leading whitespace", "  7.2", "7.2 CGPA = 68.40%"},
		{"trailing text ignored", "9.1abc", "9.1 CGPA = 86.45%"},
		{"leading dot", ".5", "0.5 CGPA = 4.75%"},
		{"exponent", "1e0", "1 CGPA = 9.50%"},
		{"tie rounds up", "0.75", "0.75 CGPA = 7.13%"},
		{"infinity", "Infinity", "Infinity CGPA = Infinity%"},
		{"huge uses exponent form", "1e21", "1e+21 CGPA = 9.5e+21%"},
		{"below exponent threshold", "1e20", "100000000000000000000 CGPA = 950000000000000000000.00%"},
		{"tiny uses exponent form", "0.0000001", "1e-7 CGPA = 0.00%"},
		{"smallest plain decimal", "0.000001", "0.000001 CGPA = 0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Calculate(catalog.CalculatorCGPA, tools.Values{"value": tt.value})
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestCGPA_InvalidNumber(t *testing.T) {
	e := New()

	for _, v := range []string{"abc", "", "   ", "-", ".", "e5", "CGPA 8"} {
		res := e.Calculate(catalog.CalculatorCGPA, tools.Values{"value": v})
		assert.False(t, res.Success, v)
		assert.Equal(t, "Invalid Number", res.Error, v)
	}

	res := e.Calculate(catalog.CalculatorCGPA, tools.Values{})
	assert.Equal(t, "Invalid Number", res.Error)
}

func TestCGPA_MatchesRoundedProduct(t *testing.T) {
	e := New()

	for i := 0; i <= 100; i++ {
		v := float64(i) / 10
		res := e.Calculate(catalog.CalculatorCGPA, tools.Values{"value": fmt.Sprint(v)})
		require.True(t, res.Success)

		want := fmt.Sprintf("%s CGPA = %.2f%%", formatNumber(v), math.Round(v*950)/100)
		assert.Equal(t, want, res.Text)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{76, "76"},
		{-0.5, "-0.5"},
		{1.5e-7, "1.5e-7"},
		{-2e-10, "-2e-10"},
		{1e21, "1e+21"},
		{1.25e100, "1.25e+100"},
		{1e20, "100000000000000000000"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in), "%v", tt.in)
	}

	assert.Equal(t, "-0.00", formatFixed2(-0.001))
	assert.Equal(t, "2e+22", formatFixed2(2e22))
}

func TestAge(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		today func() time.Time
		want  string
	}{
		{
			name:  "reference fixture",
			birth: "2000-01-01",
			today: fixedClock(2024, time.June, 15),
			want:  "You are 24 years, 5 months, and 14 days old.",
		},
		{
			name:  "birthday today",
			birth: "1990-03-10",
			today: fixedClock(2020, time.March, 10),
			want:  "You are 30 years, 0 months, and 0 days old.",
		},
		{
			name:  "borrows days from previous month",
			birth: "2000-01-20",
			today: fixedClock(2024, time.March, 10),
			want:  "You are 24 years, 1 months, and 19 days old.",
		},
		{
			name:  "borrows a year",
			birth: "2000-11-20",
			today: fixedClock(2024, time.February, 10),
			want:  "You are 23 years, 2 months, and 21 days old.",
		},
		{
			name:  "january borrows from december",
			birth: "2010-05-25",
			today: fixedClock(2024, time.January, 5),
			want:  "You are 13 years, 7 months, and 11 days old.",
		},
		{
			name:  "non padded date",
			birth: "2000-1-1",
			today: fixedClock(2024, time.June, 15),
			want:  "You are 24 years, 5 months, and 14 days old.",
		},
		{
			name:  "timestamp",
			birth: "2000-01-01T08:30:00Z",
			today: fixedClock(2024, time.June, 15),
			want:  "You are 24 years, 5 months, and 14 days old.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Engine{Now: tt.today}
			res := e.Calculate(catalog.CalculatorAge, tools.Values{"date": tt.birth})
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestAge_InvalidDate(t *testing.T) {
	e := &Engine{Now: fixedClock(2024, time.June, 15)}

	for _, v := range []string{"not-a-date", "", "2024-13-01", "2024-02-30", "15/06/2024"} {
		res := e.Calculate(catalog.CalculatorAge, tools.Values{"date": v})
		assert.False(t, res.Success, v)
		assert.Equal(t, "Invalid Date Format (YYYY-MM-DD)", res.Error, v)
	}
}

func TestElapsed_ComponentBounds(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	birth := time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

	for d := birth; !d.After(today); d = d.AddDate(0, 0, 7) {
		years, months, days := Elapsed(d, today)
		require.GreaterOrEqual(t, years, 0, d)
		require.True(t, months >= 0 && months < 12, "months=%d for %s", months, d)
		require.True(t, days >= 0 && days < 31, "days=%d for %s", days, d)

		// Adding the components back lands on today.
		back := d.AddDate(years, months, 0)
		if back.Day() == d.Day() {
			assert.Equal(t, today, back.AddDate(0, 0, days), d)
		}
	}
}

func TestUnknownCalculator(t *testing.T) {
	res := New().Calculate("custom-tool", tools.Values{"val": "1"})
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown calculator", res.Error)
}

func TestEngine_Execute(t *testing.T) {
	e := New()
	assert.Equal(t, catalog.KindCalculation, e.Kind())

	tool := catalog.Descriptor{Slug: catalog.CalculatorCGPA}
	res := e.Execute(context.Background(), tool, tools.Values{"value": "9"})
	require.True(t, res.Success)
	assert.Equal(t, "9 CGPA = 85.50%", res.Text)
}
