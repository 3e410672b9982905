// Package calc implements the student calculators.
package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/tools"
)

// cgpaMultiplier converts a 10-point CGPA to a percentage.
const cgpaMultiplier = 9.5

var leadingFloat = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-1-2",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type Engine struct {
	// Now is the clock used for age calculations.
	Now func() time.Time
}

func New() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) Kind() catalog.Kind {
	return catalog.KindCalculation
}

func (e *Engine) Execute(_ context.Context, tool catalog.Descriptor, values tools.Values) tools.Result {
	return e.Calculate(tool.Slug, values)
}

func (e *Engine) Calculate(slug string, values tools.Values) tools.Result {
	switch slug {
	case catalog.CalculatorCGPA:
		return cgpaPercentage(values.String("value"))
	case catalog.CalculatorAge:
		return e.age(values.String("date"))
	default:
		return tools.NewErrorResult("Unknown calculator")
	}
}

func cgpaPercentage(input string) tools.Result {
	val, ok := parseLeadingFloat(input)
	if !ok {
		return tools.NewErrorResult("Invalid Number")
	}
	return tools.NewResult(fmt.Sprintf("%s CGPA = %s%%", formatNumber(val), formatFixed2(val*cgpaMultiplier)))
}

func (e *Engine) age(input string) tools.Result {
	birth, ok := parseDate(input)
	if !ok {
		return tools.NewErrorResult("Invalid Date Format (YYYY-MM-DD)")
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	years, months, days := Elapsed(birth, now())

	return tools.NewResult(fmt.Sprintf("You are %d years, %d months, and %d days old.", years, months, days))
}

// Elapsed splits the calendar time between from and to into whole years,
// months and days. A negative day difference borrows the length of the
// month preceding to.
func Elapsed(from, to time.Time) (years, months, days int) {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()

	years = ty - fy
	months = int(tm) - int(fm)
	days = td - fd

	if days < 0 {
		months--
		days += daysIn(ty, tm-1)
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months, days
}

// daysIn returns the length of month m of year y; m may be 0 for the
// December of the previous year.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseLeadingFloat reads the longest numeric prefix of s after leading
// whitespace. Trailing text is ignored.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return 0, false
	}

	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out of range literals saturate to an infinity with the right sign.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// formatNumber prints v the way a JavaScript template literal does: plain
// decimals, switching to exponent form below 1e-6 and from 1e21 up.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		return jsExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// jsExponent drops the zero padding Go puts on exponents ("1.5e-07" becomes
// "1.5e-7").
func jsExponent(s string) string {
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

// formatFixed2 formats v with two decimals, rounding exact ties away from
// zero. Magnitudes from 1e21 up fall back to formatNumber, as toFixed does.
func formatFixed2(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) >= 1e21 {
		return formatNumber(v)
	}

	neg := v < 0
	x := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)

	digits := n.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if neg {
		out = "-" + out
	}
	return out
}
