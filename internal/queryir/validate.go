package queryir

import "fmt"

// Validate checks that a term tree is structurally well formed.
//
// Rules:
//  1. Comparisons use a comparison operation and exactly its arity of operands
//  2. Every comparison has at least one Column operand; operands are non-nil
//  3. Composites use a combinator with at least one child (exactly one for NOT)
//  4. No nil terms anywhere in the tree
//
// Field mapping is NOT checked here; that needs the registries and happens
// during compilation. Validate is a pure function with no side effects.
// The returned error is a MALFORMED_TERM *Error naming the offending path.
func Validate(term Term) error {
	v := &validator{}
	v.validateTerm(term, "$")
	return v.err
}

// validator stops at the first violation.
type validator struct {
	err error
}

func (v *validator) fail(path, format string, args ...any) {
	if v.err != nil {
		return
	}
	e := NewMalformedTermError(format, args...)
	e.Message = fmt.Sprintf("%s: %s", path, e.Message)
	v.err = e
}

// validateTerm recursively validates a term node.
func (v *validator) validateTerm(t Term, path string) {
	if v.err != nil {
		return
	}

	switch term := t.(type) {
	case nil:
		v.fail(path, "nil term")
	case *Comparison:
		if term == nil {
			v.fail(path, "nil comparison")
			return
		}
		v.validateComparison(term, path)
	case *Composite:
		if term == nil {
			v.fail(path, "nil composite")
			return
		}
		v.validateComposite(term, path)
	default:
		v.fail(path, "unknown term type %T", t)
	}
}

// validateComparison validates a leaf comparison.
func (v *validator) validateComparison(c *Comparison, path string) {
	if c.Op.Kind != KindComparison {
		v.fail(path, "operation %q is not a comparison", c.Op.Name)
		return
	}
	if c.Op.Arity != len(c.Operands) {
		v.fail(path, "operation %q expects %d operand(s), got %d", c.Op.Name, c.Op.Arity, len(c.Operands))
		return
	}

	columns := 0
	for i, operand := range c.Operands {
		switch o := operand.(type) {
		case Column:
			if o.Field == "" {
				v.fail(path, "operand %d references an empty field", i)
				return
			}
			columns++
		case Constant:
			if o.Value == nil {
				v.fail(path, "operand %d has no value", i)
				return
			}
		default:
			v.fail(path, "operand %d has unknown type %T", i, operand)
			return
		}
	}
	if columns == 0 {
		v.fail(path, "comparison %q has no column operand", c.Op.Name)
	}
}

// validateComposite validates a combinator node and its children.
func (v *validator) validateComposite(c *Composite, path string) {
	if c.Op.Kind != KindCombinator {
		v.fail(path, "operation %q is not a combinator", c.Op.Name)
		return
	}
	if len(c.Terms) == 0 {
		v.fail(path, "composite %q has no children", c.Op.Name)
		return
	}
	if c.Op.Arity != Variadic && c.Op.Arity != len(c.Terms) {
		v.fail(path, "combinator %q expects %d child(ren), got %d", c.Op.Name, c.Op.Arity, len(c.Terms))
		return
	}

	for i, child := range c.Terms {
		v.validateTerm(child, fmt.Sprintf("%s.%s[%d]", path, c.Op.Name, i))
	}
}
