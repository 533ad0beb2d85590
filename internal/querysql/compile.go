package querysql

import (
	"strings"

	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// compiler renders one term. It collects parameters and join flags in its
// own buffers so a failed compilation leaves the adapter untouched.
type compiler struct {
	resolver *mapping.Resolver
	cfg      *config
	base     int // parameters already placed before this term
	params   []any
	tracker  *JoinTracker
}

func newCompiler(resolver *mapping.Resolver, cfg *config, base int) *compiler {
	return &compiler{
		resolver: resolver,
		cfg:      cfg,
		base:     base,
		tracker:  NewJoinTracker(),
	}
}

// compileTerm renders a term to SQL.
// CRITICAL: Values NEVER interpolated - always use placeholders.
func (c *compiler) compileTerm(t queryir.Term) (string, error) {
	switch term := t.(type) {
	case *queryir.Comparison:
		return c.compileComparison(term)
	case *queryir.Composite:
		return c.compileComposite(term)
	default:
		return "", queryir.NewMalformedTermError("unsupported term type %T", t)
	}
}

// compileComparison renders a comparison against every mapping of its
// primary field: "(m1)" for one mapping, "(m1 OR m2 ...)" for several.
func (c *compiler) compileComparison(term *queryir.Comparison) (string, error) {
	if len(term.Operands) != term.Op.Arity {
		return "", queryir.NewMalformedTermError("operation %q expects %d operand(s), got %d",
			term.Op.Name, term.Op.Arity, len(term.Operands))
	}
	field, ok := term.PrimaryField()
	if !ok {
		return "", queryir.NewMalformedTermError("comparison %q has no column operand", term.Op.Name)
	}
	mappings, err := c.resolver.Resolve(field)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(mappings))
	for _, m := range mappings {
		sql, err := c.compileMapping(term, field, m)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

// compileMapping renders a comparison against one mapping of its primary
// field, rewriting equality into LIKE for wildcard constants on textual
// columns.
func (c *compiler) compileMapping(term *queryir.Comparison, field queryir.Field, m mapping.Mapping) (string, error) {
	op := term.Op
	operands := term.Operands
	pattern := false
	if m.Type.IsText() && hasWildcard(operands) {
		switch op.Name {
		case queryir.OpEquals.Name:
			op, pattern = queryir.OpLike, true
		case queryir.OpNotEquals.Name:
			op, pattern = queryir.OpNotLike, true
		}
	}
	if pattern {
		operands = columnsFirst(operands)
	}

	tokens := make([]string, 0, len(operands))
	for _, operand := range operands {
		token, err := c.renderOperand(operand, field, m, pattern)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, token)
	}

	sql := place(op, tokens)
	if pattern {
		sql += c.cfg.dialect.likeEscape()
	}
	return sql, nil
}

// compileComposite renders a combinator over its children. OR terms are
// offered to the IN folder first.
func (c *compiler) compileComposite(term *queryir.Composite) (string, error) {
	if len(term.Terms) == 0 {
		return "", queryir.NewMalformedTermError("composite %q has no children", term.Op.Name)
	}
	if term.Op.Arity != queryir.Variadic && term.Op.Arity != len(term.Terms) {
		return "", queryir.NewMalformedTermError("combinator %q expects %d child(ren), got %d",
			term.Op.Name, term.Op.Arity, len(term.Terms))
	}

	if term.Op.Name == queryir.OpOr.Name {
		sql, folded, err := c.tryFold(term)
		if err != nil {
			return "", err
		}
		if folded {
			return sql, nil
		}
	}

	children := make([]string, 0, len(term.Terms))
	for _, child := range term.Terms {
		sql, err := c.compileTerm(child)
		if err != nil {
			return "", err
		}
		children = append(children, sql)
	}
	return "(" + place(term.Op, children) + ")", nil
}

// place puts an operation's token relative to its rendered operands.
// Infix tokens go strictly between operands, never before the first or
// after the last.
func place(op queryir.Operation, operands []string) string {
	switch op.Placement {
	case queryir.PlacementPrefix:
		return op.Token + " " + strings.Join(operands, " ")
	case queryir.PlacementPostfix:
		return strings.Join(operands, " ") + " " + op.Token
	default:
		return strings.Join(operands, " "+op.Token+" ")
	}
}

func hasWildcard(operands []queryir.Operand) bool {
	for _, operand := range operands {
		if constant, ok := operand.(queryir.Constant); ok && isWildcard(constant.Value) {
			return true
		}
	}
	return false
}

// columnsFirst moves column operands before constants so a LIKE pattern is
// always on the right-hand side. Equality is symmetric, so this keeps the
// meaning of the comparison.
func columnsFirst(operands []queryir.Operand) []queryir.Operand {
	ordered := make([]queryir.Operand, 0, len(operands))
	for _, operand := range operands {
		if _, ok := operand.(queryir.Column); ok {
			ordered = append(ordered, operand)
		}
	}
	for _, operand := range operands {
		if _, ok := operand.(queryir.Column); !ok {
			ordered = append(ordered, operand)
		}
	}
	return ordered
}
