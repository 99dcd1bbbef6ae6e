package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

// A "k" right after a number ("50k", "50 K") or standing alone.
var thousandsPattern = regexp.MustCompile(`(?:\d\s*k|\bk)\b`)

// ParseSalaryExpectation reads the first amount in s, scaled by its unit.
func ParseSalaryExpectation(s string) Option[float64] {
	return parseAmount(s, false)
}

// ParseSalaryCeiling reads the last amount in s, which for a range such as
// "40k-60k" is the offered ceiling.
func ParseSalaryCeiling(s string) Option[float64] {
	return parseAmount(s, true)
}

func parseAmount(s string, last bool) Option[float64] {
	text := strings.ToLower(strings.ReplaceAll(s, ",", ""))
	numbers := numberPattern.FindAllString(text, -1)
	if len(numbers) == 0 {
		return None[float64]()
	}

	raw := numbers[0]
	if last {
		raw = numbers[len(numbers)-1]
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return None[float64]()
	}

	return Some(value * unitMultiplier(text))
}

// unitMultiplier scales lakh by 10,000 and k by 1,000.
func unitMultiplier(text string) float64 {
	switch {
	case strings.Contains(text, "lakh"):
		return 10000
	case thousandsPattern.MatchString(text):
		return 1000
	default:
		return 1
	}
}

// Salary compares the offered ceiling against the subject's expectation.
// Either side missing or unparsable scores neutral.
func Salary(expectation, offered string) float64 {
	expected, ok := ParseSalaryExpectation(expectation).Get()
	if !ok {
		return neutralSalary
	}
	ceiling, ok := ParseSalaryCeiling(offered).Get()
	if !ok {
		return neutralSalary
	}

	switch {
	case ceiling >= expected:
		return 1.0
	case ceiling >= expected*0.8:
		return 0.8
	case ceiling >= expected*0.6:
		return 0.6
	default:
		return 0.3
	}
}
