package querysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// ErrFinalized is returned when appending to an adapter whose clause has
// already been read.
var ErrFinalized = errors.New("querysql: adapter is finalized")

// emptyClause is returned when nothing was appended; it is the identity
// element of a conjunction.
const emptyClause = "TRUE"

// Binder receives bind parameters by 1-based statement index.
type Binder interface {
	Bind(index int, value any) error
}

// ArgsBinder collects parameters into an argument slice for database/sql.
type ArgsBinder struct {
	Args []any
}

// Bind stores value at the 1-based index, growing Args as needed.
func (b *ArgsBinder) Bind(index int, value any) error {
	if index < 1 {
		return fmt.Errorf("bind index %d out of range", index)
	}
	for len(b.Args) < index {
		b.Args = append(b.Args, nil)
	}
	b.Args[index-1] = value
	return nil
}

// Adapter accumulates compiled search terms into one SQL condition.
//
// Lifecycle: Created → (Append*) → Finalized. Clause and SetParameters
// finalize the adapter; later appends fail with ErrFinalized.
type Adapter struct {
	resolver  *mapping.Resolver
	cfg       config
	clause    strings.Builder
	params    []any
	tracker   *JoinTracker
	finalized bool
}

// NewAdapter creates an adapter resolving fields through resolver.
func NewAdapter(resolver *mapping.Resolver, opts ...Option) *Adapter {
	cfg := newConfig(opts)
	if cfg.charset != "" && cfg.dialect != DialectMySQL {
		cfg.logger.Debug("charset ignored by dialect", "charset", cfg.charset, "dialect", cfg.dialect)
	}
	return &Adapter{
		resolver: resolver,
		cfg:      cfg,
		tracker:  NewJoinTracker(),
	}
}

// Append compiles term and appends its text to the clause. Successive
// appends are concatenated as is; use AppendText to put combinators between
// them, or pass one composite term.
//
// On error the clause, parameters and join flags are left unchanged.
func (a *Adapter) Append(term queryir.Term) error {
	if a.finalized {
		return ErrFinalized
	}
	if err := queryir.Validate(term); err != nil {
		return fmt.Errorf("append term: %w", err)
	}

	c := newCompiler(a.resolver, &a.cfg, a.cfg.placeholderOffset+len(a.params))
	sql, err := c.compileTerm(term)
	if err != nil {
		return fmt.Errorf("compile term: %w", err)
	}

	a.clause.WriteString(sql)
	a.params = append(a.params, c.params...)
	a.tracker.merge(c.tracker)

	a.cfg.logger.Debug("search term compiled",
		"dialect", a.cfg.dialect,
		"sql", sql,
		"params", len(c.params),
		"joins", c.tracker.Groups(),
	)
	return nil
}

// AppendFilters appends a list of filters combined with AND. A single
// filter is appended unchanged; an empty list is a no-op.
func (a *Adapter) AppendFilters(terms ...queryir.Term) error {
	switch len(terms) {
	case 0:
		if a.finalized {
			return ErrFinalized
		}
		return nil
	case 1:
		return a.Append(terms[0])
	default:
		return a.Append(queryir.And(terms...))
	}
}

// AppendText appends raw SQL without parameters, e.g. " AND " between two
// appended terms.
func (a *Adapter) AppendText(sql string) error {
	if a.finalized {
		return ErrFinalized
	}
	a.clause.WriteString(sql)
	return nil
}

// Clause returns the accumulated condition and finalizes the adapter.
func (a *Adapter) Clause() string {
	a.finalized = true
	if a.clause.Len() == 0 {
		return emptyClause
	}
	return a.clause.String()
}

// Parameters returns a copy of the bind parameters in placeholder order.
func (a *Adapter) Parameters() []any {
	params := make([]any, len(a.params))
	copy(params, a.params)
	return params
}

// SetParameters binds the parameters starting at index and returns the
// next free index. It finalizes the adapter.
func (a *Adapter) SetParameters(b Binder, index int) (int, error) {
	a.finalized = true
	for _, value := range a.params {
		if err := b.Bind(index, value); err != nil {
			return index, fmt.Errorf("bind parameter %d: %w", index, err)
		}
		index++
	}
	return index, nil
}

// Finalized reports whether Clause or SetParameters has been called.
func (a *Adapter) Finalized() bool {
	return a.finalized
}

// UsesInternalAttendees reports whether the clause references the internal
// attendee table.
func (a *Adapter) UsesInternalAttendees() bool {
	return a.tracker.Uses(mapping.GroupInternalAttendees)
}

// UsesExternalAttendees reports whether the clause references the external
// attendee table.
func (a *Adapter) UsesExternalAttendees() bool {
	return a.tracker.Uses(mapping.GroupExternalAttendees)
}

// Uses reports whether the clause references a table of group.
func (a *Adapter) Uses(group mapping.JoinGroup) bool {
	return a.tracker.Uses(group)
}

// JoinGroups returns every join group the clause references, sorted.
func (a *Adapter) JoinGroups() []mapping.JoinGroup {
	return a.tracker.Groups()
}

// Dialect returns the configured SQL dialect.
func (a *Adapter) Dialect() Dialect {
	return a.cfg.dialect
}
