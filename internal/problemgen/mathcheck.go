package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// MathCheckValidator independently recomputes the answer from the prompt.
// Angle problems have no prompt and pass through.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	if p.AnswerType == AnswerTypeText {
		return nil
	}
	computed, err := computeAnswer(p.Prompt, p.AnswerType)
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("cannot recompute %q: %s", p.Prompt, err),
		}
	}
	if computed != p.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but generator produced %q", computed, p.Answer),
		}
	}
	return nil
}

var (
	// Fraction addition: "a/b + c/d"
	fractionArithRe = regexp.MustCompile(`^(\d+)/(\d+) \+ (\d+)/(\d+)$`)

	// Integer/decimal arithmetic: "a op b" with op in + - × ÷
	numberArithRe = regexp.MustCompile(`^(\d+(?:\.\d+)?) ([+\-×÷]) (\d+(?:\.\d+)?)$`)
)

// computeAnswer extracts and evaluates the prompt expression, returning the
// answer in the same canonical form the generators produce.
func computeAnswer(prompt string, answerType AnswerType) (string, error) {
	if answerType == AnswerTypeFraction {
		return tryFractionArith(prompt)
	}
	return tryNumberArith(prompt, answerType)
}

func tryFractionArith(prompt string) (string, error) {
	m := fractionArithRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", fmt.Errorf("no fraction expression found")
	}

	aN, _ := strconv.ParseInt(m[1], 10, 64)
	aD, _ := strconv.ParseInt(m[2], 10, 64)
	bN, _ := strconv.ParseInt(m[3], 10, 64)
	bD, _ := strconv.ParseInt(m[4], 10, 64)
	if aD == 0 || bD == 0 {
		return "", fmt.Errorf("zero denominator")
	}

	rN := aN*bD + bN*aD
	rD := aD * bD
	g := gcd(abs(rN), rD)
	return formatFraction(rN/g, rD/g), nil
}

func tryNumberArith(prompt string, answerType AnswerType) (string, error) {
	m := numberArithRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", fmt.Errorf("no arithmetic expression found")
	}
	a, err := decimal.NewFromString(m[1])
	if err != nil {
		return "", err
	}
	b, err := decimal.NewFromString(m[3])
	if err != nil {
		return "", err
	}

	var result decimal.Decimal
	switch m[2] {
	case "+":
		result = a.Add(b)
	case "-":
		result = a.Sub(b)
	case "×":
		result = a.Mul(b)
	case "÷":
		if b.IsZero() {
			return "", fmt.Errorf("division by zero")
		}
		result = a.Div(b)
	default:
		return "", fmt.Errorf("unsupported operator: %s", m[2])
	}

	if answerType == AnswerTypeInteger {
		if !result.IsInteger() {
			return "", fmt.Errorf("result %s is not a whole number", result)
		}
		if result.IsNegative() {
			return "", fmt.Errorf("result %s is negative", result)
		}
	}
	return result.Round(1).String(), nil
}
