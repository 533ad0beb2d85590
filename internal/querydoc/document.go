package querydoc

import (
	"fmt"
	"strings"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
	"github.com/roach88/calsearch/internal/querysql"
)

// Document is a search query with its rendering configuration.
type Document struct {
	Dialect  string            `yaml:"dialect" json:"dialect,omitempty"`
	Charset  string            `yaml:"charset" json:"charset,omitempty"`
	Prefixes map[string]string `yaml:"prefixes" json:"prefixes,omitempty"`
	Query    *Node             `yaml:"query" json:"query,omitempty"`
}

// Node is one term of the query tree.
type Node struct {
	Op         string  `yaml:"op" json:"op"`
	Field      string  `yaml:"field" json:"field,omitempty"`
	OtherField string  `yaml:"other_field" json:"other_field,omitempty"`
	Value      any     `yaml:"value" json:"value,omitempty"`
	Values     []any   `yaml:"values" json:"values,omitempty"`
	Terms      []*Node `yaml:"terms" json:"terms,omitempty"`
}

// documentKeys and nodeKeys are the keys accepted in CUE documents.
var (
	documentKeys = []string{"dialect", "charset", "prefixes", "query"}
	nodeKeys     = []string{"op", "field", "other_field", "value", "values", "terms"}
)

// Options returns the adapter options the document configures.
func (d *Document) Options() ([]querysql.Option, error) {
	dialect, err := querysql.ParseDialect(d.Dialect)
	if err != nil {
		return nil, &DocumentError{Path: "dialect", Message: err.Error()}
	}

	opts := []querysql.Option{querysql.WithDialect(dialect)}
	if d.Charset != "" {
		opts = append(opts, querysql.WithCharset(d.Charset))
	}
	if len(d.Prefixes) > 0 {
		opts = append(opts, querysql.WithPrefixes(d.Prefixes))
	}
	return opts, nil
}

// Term builds the term tree. A document without a query yields a nil
// term, which matches everything.
func (d *Document) Term() (queryir.Term, error) {
	if d.Query == nil {
		return nil, nil
	}
	return d.Query.term("query")
}

func (n *Node) term(path string) (queryir.Term, error) {
	if n == nil {
		return nil, &DocumentError{Path: path, Message: "empty node"}
	}

	switch name := strings.ToLower(strings.TrimSpace(n.Op)); name {
	case "":
		return nil, &DocumentError{Path: path, Message: "op is required"}

	case "in":
		if n.Field == "" {
			return nil, &DocumentError{Path: path, Message: "field is required"}
		}
		if len(n.Values) == 0 {
			return nil, &DocumentError{Path: path, Message: "in requires at least one value"}
		}
		values := make([]ir.IRValue, len(n.Values))
		for i, raw := range n.Values {
			v, err := ir.FromAny(raw)
			if err != nil {
				return nil, &DocumentError{Path: fmt.Sprintf("%s.values[%d]", path, i), Message: err.Error()}
			}
			values[i] = v
		}
		return queryir.In(queryir.Field(n.Field), values...), nil
	}

	op, ok := queryir.LookupOperation(n.Op)
	if !ok {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("unknown operation %q", n.Op)}
	}
	if op.Kind == queryir.KindCombinator {
		return n.composite(op, path)
	}
	return n.comparison(op, path)
}

func (n *Node) composite(op queryir.Operation, path string) (queryir.Term, error) {
	if n.Field != "" || n.Value != nil || len(n.Values) > 0 {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s takes terms only", op.Name)}
	}
	if len(n.Terms) == 0 {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s requires terms", op.Name)}
	}
	if op.Arity != queryir.Variadic && len(n.Terms) != op.Arity {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s takes exactly %d term(s), got %d", op.Name, op.Arity, len(n.Terms))}
	}

	terms := make([]queryir.Term, len(n.Terms))
	for i, child := range n.Terms {
		term, err := child.term(fmt.Sprintf("%s.terms[%d]", path, i))
		if err != nil {
			return nil, err
		}
		terms[i] = term
	}
	return &queryir.Composite{Op: op, Terms: terms}, nil
}

func (n *Node) comparison(op queryir.Operation, path string) (queryir.Term, error) {
	if n.Field == "" {
		return nil, &DocumentError{Path: path, Message: "field is required"}
	}
	if len(n.Terms) > 0 || len(n.Values) > 0 {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s takes field and value only", op.Name)}
	}

	field := queryir.Field(n.Field)
	switch {
	case op.Arity == 1:
		if n.Value != nil || n.OtherField != "" {
			return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s takes no value", op.Name)}
		}
		return &queryir.Comparison{Op: op, Operands: []queryir.Operand{queryir.Column{Field: field}}}, nil

	case n.OtherField != "":
		if n.Value != nil {
			return nil, &DocumentError{Path: path, Message: "value and other_field are exclusive"}
		}
		return queryir.CompareFields(op, field, queryir.Field(n.OtherField)), nil

	case n.Value == nil:
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("%s requires a value (use is_null to match NULL)", op.Name)}

	default:
		value, err := ir.FromAny(n.Value)
		if err != nil {
			return nil, &DocumentError{Path: path + ".value", Message: err.Error()}
		}
		return queryir.Compare(op, field, value), nil
	}
}
