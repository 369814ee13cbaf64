package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

var fractionPattern = regexp.MustCompile(`^-?\d+/\d+$`)

// AnswerFormatValidator checks that the answer string matches the declared
// answer type and that the choice list contains it.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	switch p.AnswerType {
	case AnswerTypeInteger:
		if err := validateInteger(p.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid integer answer %q: %s", p.Answer, err),
			}
		}
	case AnswerTypeDecimal:
		if err := validateDecimal(p.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid decimal answer %q: %s", p.Answer, err),
			}
		}
	case AnswerTypeFraction:
		if err := validateFraction(p.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid fraction answer %q: %s", p.Answer, err),
			}
		}
	}

	// Distractors may repeat each other or even the answer (max(0, 0-k) == 0),
	// so only presence is required.
	for _, c := range p.Choices {
		if c.Value == p.Answer {
			return nil
		}
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("answer %q not found in choices", p.Answer),
	}
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	if n < 0 {
		return fmt.Errorf("is negative")
	}
	return nil
}

// validateDecimal checks that s is a valid decimal string with no trailing zeros
// and at most one decimal place.
func validateDecimal(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a valid decimal")
	}
	normalized := strconv.FormatFloat(f, 'f', -1, 64)
	if normalized != s {
		return fmt.Errorf("has trailing zeros or is not normalized (expected %q)", normalized)
	}
	if rounded := strconv.FormatFloat(f, 'f', 1, 64); normalized != rounded && normalized+".0" != rounded {
		return fmt.Errorf("has more than one decimal place")
	}
	return nil
}

// validateFraction checks that s matches a/b pattern, denominator > 0, and is in lowest terms.
func validateFraction(s string) error {
	if !fractionPattern.MatchString(s) {
		return fmt.Errorf("does not match fraction pattern a/b")
	}
	num, den, err := parseFraction(s)
	if err != nil {
		return err
	}
	if den <= 0 {
		return fmt.Errorf("denominator must be positive")
	}
	if gcd(abs(num), den) != 1 {
		return fmt.Errorf("fraction is not in lowest terms")
	}
	return nil
}
