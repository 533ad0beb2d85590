// Package celquery turns CEL filter expressions into queryir term trees.
//
// Supported syntax:
//
//	summary == "Standup" && start_date >= "2026-10-17"
//	attendee.partstat in ["ACCEPTED", "TENTATIVE"]
//	!(series_id == null) || folder != 12
//	created_by == modified_by
//
// Identifiers and dotted selections name fields; they are not declared, so
// expressions are parsed but never type-checked. Chains of && and || are
// flattened, which lets the SQL compiler fold "x == a || x == b" into IN.
package celquery

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	exprv1 "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
)

// comparisons maps CEL operator functions to comparison operations.
var comparisons = map[string]queryir.Operation{
	"_==_": queryir.OpEquals,
	"_!=_": queryir.OpNotEquals,
	"_<_":  queryir.OpLessThan,
	"_<=_": queryir.OpLessOrEqual,
	"_>_":  queryir.OpGreaterThan,
	"_>=_": queryir.OpGreaterOrEqual,
}

// mirrored gives the operation to use when the operands swap sides.
var mirrored = map[string]queryir.Operation{
	"_==_": queryir.OpEquals,
	"_!=_": queryir.OpNotEquals,
	"_<_":  queryir.OpGreaterThan,
	"_<=_": queryir.OpGreaterOrEqual,
	"_>_":  queryir.OpLessThan,
	"_>=_": queryir.OpLessOrEqual,
}

// Parse parses a CEL expression into a term.
func Parse(expr string) (queryir.Term, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("filter expression is empty")
	}

	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	ast, issues := env.Parse(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to parse filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to convert AST: %w", err)
	}

	return buildTerm(parsed.GetExpr())
}

func buildTerm(expr *exprv1.Expr) (queryir.Term, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return nil, fmt.Errorf("filter must be a comparison or a boolean combination")
	}

	switch call.Function {
	case "_&&_", "_||_":
		var children []queryir.Term
		for _, arg := range flatten(call.Function, expr) {
			child, err := buildTerm(arg)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if call.Function == "_&&_" {
			return queryir.And(children...), nil
		}
		return queryir.Or(children...), nil

	case "!_":
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("logical NOT expects one argument")
		}
		child, err := buildTerm(call.Args[0])
		if err != nil {
			return nil, err
		}
		return queryir.Not(child), nil

	case "@in":
		return buildIn(call)

	default:
		if _, ok := comparisons[call.Function]; ok {
			return buildComparison(call)
		}
		return nil, fmt.Errorf("unsupported call expression %q", call.Function)
	}
}

// flatten collects the operands of a chain of one logical operator.
func flatten(function string, expr *exprv1.Expr) []*exprv1.Expr {
	call := expr.GetCallExpr()
	if call == nil || call.Function != function {
		return []*exprv1.Expr{expr}
	}
	var args []*exprv1.Expr
	for _, arg := range call.Args {
		args = append(args, flatten(function, arg)...)
	}
	return args
}

func buildComparison(call *exprv1.Expr_Call) (queryir.Term, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("comparison expects two arguments")
	}
	left, right := call.Args[0], call.Args[1]

	leftField, leftIsField := fieldName(left)
	rightField, rightIsField := fieldName(right)

	switch {
	case leftIsField && rightIsField:
		return queryir.CompareFields(comparisons[call.Function], queryir.Field(leftField), queryir.Field(rightField)), nil
	case leftIsField:
		return compareConstant(call.Function, comparisons[call.Function], leftField, right)
	case rightIsField:
		return compareConstant(call.Function, mirrored[call.Function], rightField, left)
	default:
		return nil, fmt.Errorf("comparison %s needs a field operand", call.Function)
	}
}

// compareConstant builds "field op constant". Equality against null
// becomes IS NULL / IS NOT NULL.
func compareConstant(function string, op queryir.Operation, field string, expr *exprv1.Expr) (queryir.Term, error) {
	raw, err := getConstValue(expr)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}

	if raw == nil {
		switch function {
		case "_==_":
			return queryir.IsNull(queryir.Field(field)), nil
		case "_!=_":
			return queryir.IsNotNull(queryir.Field(field)), nil
		default:
			return nil, fmt.Errorf("field %q: null only supports == and !=", field)
		}
	}

	value, err := ir.FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return queryir.Compare(op, queryir.Field(field), value), nil
}

func buildIn(call *exprv1.Expr_Call) (queryir.Term, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("in operator expects two arguments")
	}
	field, ok := fieldName(call.Args[0])
	if !ok {
		return nil, fmt.Errorf("in operator expects a field on the left")
	}
	list := call.Args[1].GetListExpr()
	if list == nil {
		return nil, fmt.Errorf("in operator expects a list literal")
	}
	if len(list.Elements) == 0 {
		return nil, fmt.Errorf("field %q: in list is empty", field)
	}

	values := make([]ir.IRValue, 0, len(list.Elements))
	for _, elem := range list.Elements {
		raw, err := getConstValue(elem)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		if raw == nil {
			return nil, fmt.Errorf("field %q: null is not allowed in an in list", field)
		}
		value, err := ir.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		values = append(values, value)
	}
	return queryir.In(queryir.Field(field), values...), nil
}

// fieldName returns the dotted name of an identifier or selection chain.
func fieldName(expr *exprv1.Expr) (string, bool) {
	switch kind := expr.ExprKind.(type) {
	case *exprv1.Expr_IdentExpr:
		return kind.IdentExpr.GetName(), true
	case *exprv1.Expr_SelectExpr:
		sel := kind.SelectExpr
		if sel.GetTestOnly() {
			return "", false
		}
		operand, ok := fieldName(sel.GetOperand())
		if !ok {
			return "", false
		}
		return operand + "." + sel.GetField(), true
	default:
		return "", false
	}
}

func getConstValue(expr *exprv1.Expr) (any, error) {
	v, ok := expr.ExprKind.(*exprv1.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("expression is not a literal")
	}
	switch x := v.ConstExpr.ConstantKind.(type) {
	case *exprv1.Constant_StringValue:
		return v.ConstExpr.GetStringValue(), nil
	case *exprv1.Constant_Int64Value:
		return v.ConstExpr.GetInt64Value(), nil
	case *exprv1.Constant_Uint64Value:
		return v.ConstExpr.GetUint64Value(), nil
	case *exprv1.Constant_DoubleValue:
		return v.ConstExpr.GetDoubleValue(), nil
	case *exprv1.Constant_BoolValue:
		return v.ConstExpr.GetBoolValue(), nil
	case *exprv1.Constant_NullValue:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported constant %T", x)
	}
}
