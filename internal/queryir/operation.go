package queryir

import "strings"

// Placement says where an operation's token goes relative to its operands.
type Placement int

const (
	// PlacementInfix puts the token between consecutive operands.
	PlacementInfix Placement = iota
	// PlacementPrefix puts the token before all operands.
	PlacementPrefix
	// PlacementPostfix puts the token after all operands.
	PlacementPostfix
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlacementPrefix:
		return "prefix"
	case PlacementPostfix:
		return "postfix"
	default:
		return "infix"
	}
}

// OpKind separates comparisons (leaf terms) from combinators (composite terms).
type OpKind int

const (
	KindComparison OpKind = iota
	KindCombinator
)

// Variadic is the arity of combinators that accept one or more children.
const Variadic = -1

// Operation identifies a comparison or combinator, its SQL token, its arity
// and the placement of the token.
type Operation struct {
	Name      string
	Token     string
	Arity     int
	Placement Placement
	Kind      OpKind
}

// String returns the operation name.
func (o Operation) String() string {
	return o.Name
}

// Comparison operations.
var (
	OpEquals         = Operation{Name: "equals", Token: "=", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpNotEquals      = Operation{Name: "not_equals", Token: "<>", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpLessThan       = Operation{Name: "less_than", Token: "<", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpLessOrEqual    = Operation{Name: "less_or_equal", Token: "<=", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpGreaterThan    = Operation{Name: "greater_than", Token: ">", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpGreaterOrEqual = Operation{Name: "greater_or_equal", Token: ">=", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpIsNull         = Operation{Name: "is_null", Token: "IS NULL", Arity: 1, Placement: PlacementPostfix, Kind: KindComparison}
	OpIsNotNull      = Operation{Name: "is_not_null", Token: "IS NOT NULL", Arity: 1, Placement: PlacementPostfix, Kind: KindComparison}

	// OpLike and OpNotLike are the rewrite targets of equality comparisons
	// against wildcard patterns. Callers normally use OpEquals/OpNotEquals.
	OpLike    = Operation{Name: "like", Token: "LIKE", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
	OpNotLike = Operation{Name: "not_like", Token: "NOT LIKE", Arity: 2, Placement: PlacementInfix, Kind: KindComparison}
)

// Combinators.
var (
	OpAnd = Operation{Name: "and", Token: "AND", Arity: Variadic, Placement: PlacementInfix, Kind: KindCombinator}
	OpOr  = Operation{Name: "or", Token: "OR", Arity: Variadic, Placement: PlacementInfix, Kind: KindCombinator}
	OpNot = Operation{Name: "not", Token: "NOT", Arity: 1, Placement: PlacementPrefix, Kind: KindCombinator}
)

var operationsByName = map[string]Operation{}

func init() {
	for _, op := range []Operation{
		OpEquals, OpNotEquals, OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual,
		OpIsNull, OpIsNotNull, OpLike, OpNotLike, OpAnd, OpOr, OpNot,
	} {
		operationsByName[op.Name] = op
	}
	// Short aliases used in query documents.
	for alias, name := range map[string]string{
		"eq": "equals", "ne": "not_equals", "neq": "not_equals",
		"lt": "less_than", "le": "less_or_equal", "lte": "less_or_equal",
		"gt": "greater_than", "ge": "greater_or_equal", "gte": "greater_or_equal",
		"isnull": "is_null", "notnull": "is_not_null",
	} {
		operationsByName[alias] = operationsByName[name]
	}
}

// LookupOperation finds a built-in operation by name or alias (case-insensitive).
func LookupOperation(name string) (Operation, bool) {
	op, ok := operationsByName[strings.ToLower(strings.TrimSpace(name))]
	return op, ok
}

// IsEquality reports whether o is an equality comparison.
func (o Operation) IsEquality() bool {
	return o.Kind == KindComparison && o.Name == OpEquals.Name
}
