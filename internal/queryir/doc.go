// Package queryir provides the storage-agnostic search term representation
// compiled by querysql.
//
// A search is a tree of terms:
//
//	[caller / querydoc / celquery] → [queryir.Term] → [querysql.Adapter] → SQL fragment + params
//
// TERMS:
//
//   - Comparison: one Operation applied to an ordered list of operands
//     (a Column reference or a typed Constant)
//   - Composite: a boolean combinator (AND, OR, NOT) over child terms
//
// SEALED INTERFACES:
//
// Term and Operand are sealed interfaces using the marker method pattern.
// Only types in this package can implement them, which keeps the type
// switches in the compiler exhaustive:
//
//	switch t := term.(type) {
//	case *Comparison:
//	    // render operator and operands
//	case *Composite:
//	    // recurse into children
//	}
//
// OPERATIONS:
//
// An Operation carries its SQL token, its arity and where the token goes
// relative to its operands (prefix, infix or postfix). Placement is data,
// not code, so "IS NULL" after a single operand and "NOT" before a single
// child are rendered by the same routine as infix "=".
//
// ERRORS:
//
// Structural problems (wrong arity, empty composites, comparisons without a
// column) are reported by Validate as MALFORMED_TERM errors. The Error type
// also carries the UNMAPPABLE_FIELD and INVALID_OPERAND codes raised by the
// mapping layer and the compiler.
package queryir
