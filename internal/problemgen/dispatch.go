package problemgen

import (
	"errors"
	"fmt"
)

// ErrProblemGeneration is returned when no problem could be produced for a
// category. It should never happen for categories accepted by ParseCategory.
var ErrProblemGeneration = errors.New("problem generation failed")

// mixPool is the set mix mode draws from, one per problem.
var mixPool = []Category{CategoryNumber, CategoryFraction, CategoryDecimal, CategoryAngle}

// Dispatcher resolves a category to a concrete generator and validates
// every problem it produces.
type Dispatcher struct {
	rand   Rand
	config Config
}

// NewDispatcher creates a Dispatcher drawing from r.
func NewDispatcher(r Rand, cfg Config) *Dispatcher {
	return &Dispatcher{rand: r, config: cfg}
}

// Next generates one problem for cat at the given level.
func (d *Dispatcher) Next(cat Category, level int) (*Problem, error) {
	p, err := d.generate(cat, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProblemGeneration, err)
	}

	for _, v := range d.config.Validators {
		if verr := v.Validate(p); verr != nil {
			return nil, fmt.Errorf("%w: %w", ErrProblemGeneration, verr)
		}
	}
	return p, nil
}

func (d *Dispatcher) generate(cat Category, level int) (*Problem, error) {
	if op, ok := cat.operator(); ok {
		return Integer(op, level, d.rand)
	}

	switch cat {
	case CategoryNumber:
		return Integer(ops[d.rand.IntN(len(ops))], level, d.rand)
	case CategoryMix:
		return d.generate(mixPool[d.rand.IntN(len(mixPool))], level)
	case CategoryDecimal:
		return Decimal(level, d.rand), nil
	case CategoryFraction:
		return Fraction(level, d.rand), nil
	case CategoryAngle:
		return Angle(level, d.rand), nil
	}
	return nil, fmt.Errorf("unknown category %q", cat)
}
