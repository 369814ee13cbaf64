package problemgen

import "fmt"

// StructuralValidator checks that required fields are present and
// consistent with the problem's category.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if p.Answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if len(p.Choices) < 2 {
		return &ValidationError{Validator: v.Name(), Message: "need at least 2 choices"}
	}
	for i, c := range p.Choices {
		if c.Value == "" || c.Label == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("choice %d is empty", i+1)}
		}
	}
	switch p.AnswerType {
	case AnswerTypeInteger, AnswerTypeDecimal, AnswerTypeFraction, AnswerTypeText:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer_type must be \"integer\", \"decimal\", \"fraction\", or \"text\"",
		}
	}

	if p.Category == CategoryAngle {
		if p.Visual == nil {
			return &ValidationError{Validator: v.Name(), Message: "angle problem has no visual"}
		}
		if p.Prompt != "" {
			return &ValidationError{Validator: v.Name(), Message: "angle problem must not carry a text prompt"}
		}
		return nil
	}

	if p.Prompt == "" {
		return &ValidationError{Validator: v.Name(), Message: "prompt is empty"}
	}
	if p.Visual != nil {
		return &ValidationError{Validator: v.Name(), Message: "only angle problems carry a visual"}
	}
	return nil
}
