package queryir

import "github.com/roach88/calsearch/internal/ir"

// Field identifies a logical entity attribute, independent of storage layout.
type Field string

// Term is a node in a search tree.
//
// This is a sealed interface - only *Comparison and *Composite implement it.
type Term interface {
	termNode() // Marker method - seals interface to this package
}

// Operand is an argument of a Comparison.
//
// This is a sealed interface - only Column and Constant implement it.
type Operand interface {
	operandNode() // Marker method - seals interface to this package
}

// Column references a logical field.
type Column struct {
	Field Field
}

func (Column) operandNode() {}

// Constant is a typed literal value.
type Constant struct {
	Value ir.IRValue
}

func (Constant) operandNode() {}

// Comparison applies a comparison Operation to its operands.
//
// Semantics:
//
//	<operand> <token> <operand>   (infix, e.g. summary = ?)
//	<operand> <token>             (postfix, e.g. series_id IS NULL)
//
// At least one operand must be a Column. The first Column operand is the
// primary operand: its field decides which physical columns are compared.
type Comparison struct {
	Op       Operation
	Operands []Operand
}

func (*Comparison) termNode() {}

// PrimaryField returns the field of the first Column operand.
func (c *Comparison) PrimaryField() (Field, bool) {
	for _, operand := range c.Operands {
		if col, ok := operand.(Column); ok {
			return col.Field, true
		}
	}
	return "", false
}

// Composite combines child terms with a boolean combinator.
//
// Semantics:
//
//	(<term1> AND <term2> AND ... AND <termN>)
//	(<term1> OR <term2> OR ... OR <termN>)
//	(NOT <term>)
type Composite struct {
	Op    Operation
	Terms []Term
}

func (*Composite) termNode() {}

// Equals builds "field = value".
func Equals(field Field, value ir.IRValue) *Comparison {
	return Compare(OpEquals, field, value)
}

// NotEquals builds "field <> value".
func NotEquals(field Field, value ir.IRValue) *Comparison {
	return Compare(OpNotEquals, field, value)
}

// Compare builds a binary comparison between a field and a constant.
func Compare(op Operation, field Field, value ir.IRValue) *Comparison {
	return &Comparison{
		Op:       op,
		Operands: []Operand{Column{Field: field}, Constant{Value: value}},
	}
}

// CompareFields builds a binary comparison between two fields.
func CompareFields(op Operation, left, right Field) *Comparison {
	return &Comparison{
		Op:       op,
		Operands: []Operand{Column{Field: left}, Column{Field: right}},
	}
}

// IsNull builds "field IS NULL".
func IsNull(field Field) *Comparison {
	return &Comparison{Op: OpIsNull, Operands: []Operand{Column{Field: field}}}
}

// IsNotNull builds "field IS NOT NULL".
func IsNotNull(field Field) *Comparison {
	return &Comparison{Op: OpIsNotNull, Operands: []Operand{Column{Field: field}}}
}

// And builds a conjunction of terms.
func And(terms ...Term) *Composite {
	return &Composite{Op: OpAnd, Terms: terms}
}

// Or builds a disjunction of terms.
func Or(terms ...Term) *Composite {
	return &Composite{Op: OpOr, Terms: terms}
}

// Not negates a term.
func Not(term Term) *Composite {
	return &Composite{Op: OpNot, Terms: []Term{term}}
}

// In builds an OR of equality comparisons, one per value.
func In(field Field, values ...ir.IRValue) *Composite {
	terms := make([]Term, len(values))
	for i, v := range values {
		terms[i] = Equals(field, v)
	}
	return Or(terms...)
}

// Fields returns the distinct fields referenced by a term, in first-seen order.
func Fields(term Term) []Field {
	var fields []Field
	seen := make(map[Field]bool)
	var walk func(Term)
	walk = func(t Term) {
		switch node := t.(type) {
		case *Comparison:
			for _, operand := range node.Operands {
				if col, ok := operand.(Column); ok && !seen[col.Field] {
					seen[col.Field] = true
					fields = append(fields, col.Field)
				}
			}
		case *Composite:
			for _, child := range node.Terms {
				walk(child)
			}
		}
	}
	walk(term)
	return fields
}
