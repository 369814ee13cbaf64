package problemgen

// Problem is one multiple-choice question ready for display.
type Problem struct {
	// Prompt is the text shown to the player, e.g. "7 + 5" or "1/2 + 1/3".
	// Empty for angle problems, which are drawn instead.
	Prompt string

	// Answer is the canonical correct answer as a string.
	// Integer: "12", decimal: "7.3", fraction: "5/6", angle: "Acute".
	Answer string

	// AnswerType describes how Answer is compared and validated.
	AnswerType AnswerType

	// Choices are presented in this order. At least one has Value == Answer.
	// Duplicate distractor values are possible and kept.
	Choices []Choice

	// Category is the concrete category the problem was generated for.
	// Never CategoryMix or CategoryNumber; those resolve before generation.
	Category Category

	// Visual is set only for angle problems.
	Visual *Visual
}

// ShowsVisual reports whether the renderer should draw Visual instead of Prompt.
func (p *Problem) ShowsVisual() bool {
	return p.Visual != nil
}

// Choice is a single selectable option.
type Choice struct {
	Label string
	Value string
}

// AnswerType describes the representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "42"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "7.3"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "5/6"
	AnswerTypeText     AnswerType = "text"     // e.g. "Obtuse"
)

// AngleKind is the classification asked for by an angle problem.
type AngleKind string

const (
	AngleAcute  AngleKind = "Acute"
	AngleObtuse AngleKind = "Obtuse"
	AngleRight  AngleKind = "Right"
)

// angleKinds is the fixed choice order before shuffling.
var angleKinds = []AngleKind{AngleAcute, AngleObtuse, AngleRight}

// Visual describes a drawable angle.
type Visual struct {
	Kind    AngleKind
	Degrees float64
}

// Rand is the randomness source used by the generators.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}
