package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
)

// tryFold rewrites an OR of equality comparisons on one field into
// "column IN (?,?,...)". It reports false, leaving the compiler untouched,
// when the composite does not qualify:
//
//   - fewer than two children
//   - a child that is not an equality between one column and one non-null constant
//   - children on different fields
//   - any string constant carrying a wildcard marker
//
// The wildcard rule applies to the whole group: one wildcard sibling
// disables folding for all of them.
func (c *compiler) tryFold(term *queryir.Composite) (string, bool, error) {
	if !c.cfg.folding || term.Op.Name != queryir.OpOr.Name || len(term.Terms) < 2 {
		return "", false, nil
	}

	var field queryir.Field
	values := make([]ir.IRValue, 0, len(term.Terms))
	for i, child := range term.Terms {
		childField, value, ok := foldable(child)
		if !ok {
			return "", false, nil
		}
		if i == 0 {
			field = childField
		} else if childField != field {
			return "", false, nil
		}
		if isWildcard(value) {
			c.cfg.logger.Debug("IN folding skipped", "field", field, "reason", "wildcard constant")
			return "", false, nil
		}
		values = append(values, value)
	}

	mappings, err := c.resolver.Resolve(field)
	if err != nil {
		return "", false, err
	}

	clauses := make([]string, 0, len(mappings))
	for _, m := range mappings {
		encoded := make([]any, 0, len(values))
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			value, err := m.Encode(field, v)
			if err != nil {
				return "", false, err
			}
			key := fmt.Sprintf("%T:%v", value, value)
			if seen[key] {
				continue
			}
			seen[key] = true
			encoded = append(encoded, value)
		}

		label := c.columnLabel(field, m)
		placeholders := make([]string, len(encoded))
		for i, value := range encoded {
			placeholders[i] = c.bind(value)
		}
		clauses = append(clauses, label+" IN ("+strings.Join(placeholders, ",")+")")
	}

	c.cfg.logger.Debug("IN folding applied",
		"field", field,
		"values", len(values),
		"mappings", len(mappings),
	)

	if len(clauses) == 1 {
		return clauses[0], true, nil
	}
	return "(" + strings.Join(clauses, " OR ") + ")", true, nil
}

// foldable extracts the field and constant of an equality comparison with
// exactly one column and one non-null constant operand.
func foldable(t queryir.Term) (queryir.Field, ir.IRValue, bool) {
	cmp, ok := t.(*queryir.Comparison)
	if !ok || !cmp.Op.IsEquality() || len(cmp.Operands) != 2 {
		return "", nil, false
	}

	var (
		field     queryir.Field
		value     ir.IRValue
		hasColumn bool
		hasValue  bool
	)
	for _, operand := range cmp.Operands {
		switch o := operand.(type) {
		case queryir.Column:
			if hasColumn {
				return "", nil, false
			}
			field, hasColumn = o.Field, true
		case queryir.Constant:
			if hasValue || ir.IsNull(o.Value) {
				return "", nil, false
			}
			value, hasValue = o.Value, true
		}
	}
	if !hasColumn || !hasValue {
		return "", nil, false
	}
	return field, value, true
}
