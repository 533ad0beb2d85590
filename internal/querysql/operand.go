package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// wildcardMarkers turn an equality constant into a LIKE pattern.
// '*' and '?' are the user-facing markers, '%' is accepted as is.
const wildcardMarkers = "*?%"

// isWildcard reports whether a constant is a string carrying a wildcard marker.
func isWildcard(v ir.IRValue) bool {
	s, ok := v.(ir.IRString)
	return ok && strings.ContainsAny(string(s), wildcardMarkers)
}

// likePattern translates wildcard markers into a LIKE pattern escaped
// with backslash.
func likePattern(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// alias returns the table alias for a mapping, honoring prefix overrides.
func (c *compiler) alias(m mapping.Mapping) string {
	if alias, ok := c.cfg.prefixes[m.Registry]; ok {
		return alias
	}
	return m.Alias
}

// columnLabel renders the column reference of field in mapping m:
// qualified label, then charset conversion for textual columns, then the
// field's custom formatter.
func (c *compiler) columnLabel(field queryir.Field, m mapping.Mapping) string {
	label := m.Label(c.alias(m))
	if c.cfg.charset != "" && m.Type.IsText() {
		label = c.cfg.dialect.convertCharset(label, c.cfg.charset)
	}
	if format := c.cfg.formatters[field]; format != nil {
		label = format(label)
	}
	c.tracker.Mark(m.Group)
	return label
}

// bind appends a parameter and returns its placeholder.
func (c *compiler) bind(value any) string {
	c.params = append(c.params, value)
	return c.cfg.dialect.placeholder(c.base + len(c.params))
}

// renderOperand renders one operand of a comparison evaluated against the
// primary mapping. Constants are encoded with the primary mapping's codec;
// with pattern set they are turned into LIKE patterns.
func (c *compiler) renderOperand(operand queryir.Operand, primaryField queryir.Field, primary mapping.Mapping, pattern bool) (string, error) {
	switch o := operand.(type) {
	case queryir.Column:
		if o.Field == primaryField {
			return c.columnLabel(o.Field, primary), nil
		}
		m, err := c.secondaryMapping(o.Field, primary)
		if err != nil {
			return "", err
		}
		return c.columnLabel(o.Field, m), nil

	case queryir.Constant:
		value, err := primary.Encode(primaryField, o.Value)
		if err != nil {
			return "", err
		}
		if pattern {
			s, ok := value.(string)
			if !ok {
				s = fmt.Sprint(value)
			}
			value = likePattern(s)
		}
		return c.bind(value), nil

	default:
		return "", queryir.NewMalformedTermError("unknown operand type %T", operand)
	}
}

// secondaryMapping resolves a non-primary column operand, preferring the
// mapping from the same registry as the primary mapping.
func (c *compiler) secondaryMapping(field queryir.Field, primary mapping.Mapping) (mapping.Mapping, error) {
	mappings, err := c.resolver.Resolve(field)
	if err != nil {
		return mapping.Mapping{}, err
	}
	for _, m := range mappings {
		if m.Registry == primary.Registry {
			return m, nil
		}
	}
	return mappings[0], nil
}
