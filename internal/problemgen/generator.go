package problemgen

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Integer generates an integer arithmetic problem for op.
// Operand ranges for + and - grow with level (0..10*level-1); * uses 0..9;
// / is built as divisor*quotient so the answer is always a whole number.
func Integer(op Op, level int, r Rand) (*Problem, error) {
	level = max(level, 1)

	var a, b, answer int
	switch op {
	case OpAdd:
		a = r.IntN(10 * level)
		b = r.IntN(10 * level)
		answer = a + b
	case OpSubtract:
		a = r.IntN(10 * level)
		if a > 0 {
			b = r.IntN(a)
		}
		answer = a - b
	case OpMultiply:
		a = r.IntN(10)
		b = r.IntN(10)
		answer = a * b
	case OpDivide:
		b = 1 + r.IntN(9)
		a = b * r.IntN(10)
		answer = a / b
	default:
		return nil, fmt.Errorf("unsupported operator %q", op)
	}

	choices := []Choice{
		intChoice(answer),
		intChoice(answer + distractorOffset(r)),
		intChoice(max(0, answer-distractorOffset(r))),
	}
	shuffle(choices, r)

	return &Problem{
		Prompt:     fmt.Sprintf("%d %s %d", a, op.Symbol(), b),
		Answer:     strconv.Itoa(answer),
		AnswerType: AnswerTypeInteger,
		Choices:    choices,
		Category:   categoryForOp(op),
	}, nil
}

// Decimal generates the sum of two one-decimal operands in [0, 10).
func Decimal(_ int, r Rand) *Problem {
	a := decimal.New(int64(r.IntN(100)), -1)
	b := decimal.New(int64(r.IntN(100)), -1)
	sum := a.Add(b).Round(1)

	up := sum.Add(decimal.NewFromInt(int64(distractorOffset(r)))).Round(1)
	down := decimal.Max(decimal.Zero, sum.Sub(decimal.NewFromInt(int64(distractorOffset(r))))).Round(1)

	choices := []Choice{
		textChoice(sum.String()),
		textChoice(up.String()),
		textChoice(down.String()),
	}
	shuffle(choices, r)

	return &Problem{
		Prompt:     a.String() + " + " + b.String(),
		Answer:     sum.String(),
		AnswerType: AnswerTypeDecimal,
		Choices:    choices,
		Category:   CategoryDecimal,
	}
}

// Fraction generates the sum of two proper-or-whole fractions with
// denominators 2..6. The answer is reduced and always rendered "num/den".
func Fraction(_ int, r Rand) *Problem {
	d1 := 2 + r.IntN(5)
	d2 := 2 + r.IntN(5)
	n1 := 1 + r.IntN(d1)
	n2 := 1 + r.IntN(d2)

	num := int64(n1*d2 + n2*d1)
	den := int64(d1 * d2)
	g := gcd(num, den)
	num /= g
	den /= g

	answer := formatFraction(num, den)
	choices := []Choice{
		textChoice(answer),
		textChoice(formatFraction(num+1, den)),
		textChoice(formatFraction(num, den+1)),
	}
	shuffle(choices, r)

	return &Problem{
		Prompt:     fmt.Sprintf("%d/%d + %d/%d", n1, d1, n2, d2),
		Answer:     answer,
		AnswerType: AnswerTypeFraction,
		Choices:    choices,
		Category:   CategoryFraction,
	}
}

// Angle generates an angle classification problem. The prompt is empty;
// the renderer draws Visual.
func Angle(_ int, r Rand) *Problem {
	kind := angleKinds[r.IntN(len(angleKinds))]

	var degrees float64
	switch kind {
	case AngleRight:
		degrees = 90
	case AngleAcute:
		degrees = 20 + r.Float64()*60
	case AngleObtuse:
		degrees = 100 + r.Float64()*60
	}

	choices := make([]Choice, 0, len(angleKinds))
	for _, k := range angleKinds {
		choices = append(choices, textChoice(string(k)))
	}
	shuffle(choices, r)

	return &Problem{
		Answer:     string(kind),
		AnswerType: AnswerTypeText,
		Choices:    choices,
		Category:   CategoryAngle,
		Visual:     &Visual{Kind: kind, Degrees: degrees},
	}
}

// distractorOffset returns 1, 2 or 3.
func distractorOffset(r Rand) int {
	return 1 + r.IntN(3)
}

// shuffle permutes choices in place (Fisher-Yates).
func shuffle(choices []Choice, r Rand) {
	for i := len(choices) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		choices[i], choices[j] = choices[j], choices[i]
	}
}

func intChoice(n int) Choice {
	return textChoice(strconv.Itoa(n))
}

func textChoice(s string) Choice {
	return Choice{Label: s, Value: s}
}

func formatFraction(num, den int64) string {
	return fmt.Sprintf("%d/%d", num, den)
}
