package problemgen

import "fmt"

// Category selects which generator produces the next problem.
// The string values are the mode identifiers stored with the player record.
type Category string

const (
	CategoryAdd      Category = "number_+"
	CategorySubtract Category = "number_-"
	CategoryMultiply Category = "number_*"
	CategoryDivide   Category = "number_/"
	CategoryNumber   Category = "number" // random operator per problem
	CategoryDecimal  Category = "decimal"
	CategoryFraction Category = "fraction"
	CategoryAngle    Category = "angle"
	CategoryMix      Category = "mix" // uniformly one of number, fraction, decimal, angle
)

// CategoryInfo pairs a category with its menu label.
type CategoryInfo struct {
	Category Category
	Label    string
}

var categories = []CategoryInfo{
	{CategoryAdd, "Addition"},
	{CategorySubtract, "Subtraction"},
	{CategoryMultiply, "Multiplication"},
	{CategoryDivide, "Division"},
	{CategoryNumber, "All Operations"},
	{CategoryDecimal, "Decimals"},
	{CategoryFraction, "Fractions"},
	{CategoryAngle, "Angles"},
	{CategoryMix, "Mix It Up"},
}

// Categories returns all selectable categories in menu order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates a mode identifier.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c.Category) == s {
			return c.Category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the menu label for c, or the raw identifier if unknown.
func (c Category) Label() string {
	for _, info := range categories {
		if info.Category == c {
			return info.Label
		}
	}
	return string(c)
}

// Op is an integer arithmetic operator.
type Op string

const (
	OpAdd      Op = "+"
	OpSubtract Op = "-"
	OpMultiply Op = "*"
	OpDivide   Op = "/"
)

var ops = []Op{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Symbol returns the glyph shown in prompts.
func (o Op) Symbol() string {
	switch o {
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return string(o)
	}
}

// operator returns the fixed operator of a number_<op> category.
func (c Category) operator() (Op, bool) {
	switch c {
	case CategoryAdd:
		return OpAdd, true
	case CategorySubtract:
		return OpSubtract, true
	case CategoryMultiply:
		return OpMultiply, true
	case CategoryDivide:
		return OpDivide, true
	}
	return "", false
}

func categoryForOp(o Op) Category {
	return Category("number_" + string(o))
}
