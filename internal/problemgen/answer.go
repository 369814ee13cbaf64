package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CheckAnswer compares a submitted choice value against the correct answer.
// Returns true if the answer is correct.
//
// Comparison is loose:
// - Whitespace is trimmed
// - Integer and decimal answers compare by numeric value ("7" matches "7.0")
// - Fraction and text answers compare as exact strings ("2/4" does not match "1/2")
func CheckAnswer(submitted string, p *Problem) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" || p == nil {
		return false
	}

	switch p.AnswerType {
	case AnswerTypeInteger, AnswerTypeDecimal:
		got, err := decimal.NewFromString(submitted)
		if err != nil {
			return false
		}
		want, err := decimal.NewFromString(p.Answer)
		if err != nil {
			return false
		}
		return got.Equal(want)
	default:
		return submitted == strings.TrimSpace(p.Answer)
	}
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
