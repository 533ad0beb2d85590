package mapping

import (
	"fmt"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
)

// SQLType is the scalar type of a physical column.
type SQLType string

const (
	TypeVarchar   SQLType = "VARCHAR"
	TypeText      SQLType = "TEXT"
	TypeChar      SQLType = "CHAR"
	TypeTinyInt   SQLType = "TINYINT"
	TypeSmallInt  SQLType = "SMALLINT"
	TypeInteger   SQLType = "INTEGER"
	TypeBigInt    SQLType = "BIGINT"
	TypeBoolean   SQLType = "BOOLEAN"
	TypeTimestamp SQLType = "TIMESTAMP"
)

// IsText reports whether the column stores character data.
func (t SQLType) IsText() bool {
	switch t {
	case TypeVarchar, TypeText, TypeChar:
		return true
	}
	return false
}

// IsInteger reports whether the column stores integers.
func (t SQLType) IsInteger() bool {
	switch t {
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		return true
	}
	return false
}

// JoinGroup names an optional joined table a query may need.
// The zero value means the mapping needs no extra join.
type JoinGroup string

const (
	GroupNone              JoinGroup = ""
	GroupInternalAttendees JoinGroup = "internal_attendees"
	GroupExternalAttendees JoinGroup = "external_attendees"
)

// Descriptor maps one logical field to a column of a registry's table.
type Descriptor struct {
	Field  queryir.Field
	Column string
	Type   SQLType
	Codec  *Codec // nil selects DefaultCodec(Type)
}

// Mapping is a resolved physical location of a logical field.
type Mapping struct {
	Registry string    // owning registry name
	Group    JoinGroup // join group the table belongs to
	Alias    string    // table alias ("" renders the bare column)
	Table    string
	Column   string
	Type     SQLType
	Codec    *Codec
}

// Label renders the column reference with the given alias.
func (m Mapping) Label(alias string) string {
	if alias == "" {
		return m.Column
	}
	return alias + "." + m.Column
}

// Encode converts a logical constant into the value the column expects.
// Failures are reported as INVALID_OPERAND errors for field.
func (m Mapping) Encode(field queryir.Field, v ir.IRValue) (any, error) {
	if ir.IsNull(v) {
		return nil, nil
	}
	codec := m.Codec
	if codec == nil {
		codec = DefaultCodec(m.Type)
	}
	stored, err := codec.Encode(v)
	if err != nil {
		return nil, queryir.NewInvalidOperandError(field, fmt.Errorf("%s codec for %s: %w", codec.Name, m.Label(m.Alias), err))
	}
	return stored, nil
}

// Decode converts a stored column value back into a logical value.
func (m Mapping) Decode(stored any) (ir.IRValue, error) {
	if stored == nil {
		return ir.IRNull{}, nil
	}
	codec := m.Codec
	if codec == nil {
		codec = DefaultCodec(m.Type)
	}
	return codec.Decode(stored)
}

// Registry is an immutable table of field descriptors for one entity group.
type Registry struct {
	name    string
	table   string
	alias   string
	group   JoinGroup
	order   []queryir.Field
	byField map[queryir.Field]Descriptor
}

// NewRegistry builds a registry. It panics on duplicate or empty fields,
// which are errors in static schema tables.
func NewRegistry(name, table, alias string, group JoinGroup, descriptors ...Descriptor) *Registry {
	r := &Registry{
		name:    name,
		table:   table,
		alias:   alias,
		group:   group,
		order:   make([]queryir.Field, 0, len(descriptors)),
		byField: make(map[queryir.Field]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.Field == "" || d.Column == "" {
			panic(fmt.Sprintf("mapping: registry %q has a descriptor without field or column", name))
		}
		if _, dup := r.byField[d.Field]; dup {
			panic(fmt.Sprintf("mapping: registry %q maps field %q twice", name, d.Field))
		}
		r.byField[d.Field] = d
		r.order = append(r.order, d.Field)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Table returns the physical table name.
func (r *Registry) Table() string { return r.table }

// Alias returns the default table alias.
func (r *Registry) Alias() string { return r.alias }

// Group returns the join group of the registry's table.
func (r *Registry) Group() JoinGroup { return r.group }

// Fields returns the mapped fields in declaration order.
func (r *Registry) Fields() []queryir.Field {
	out := make([]queryir.Field, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the mapping for field, if the registry knows it.
func (r *Registry) Lookup(field queryir.Field) (Mapping, bool) {
	d, ok := r.byField[field]
	if !ok {
		return Mapping{}, false
	}
	return Mapping{
		Registry: r.name,
		Group:    r.group,
		Alias:    r.alias,
		Table:    r.table,
		Column:   d.Column,
		Type:     d.Type,
		Codec:    d.Codec,
	}, true
}

// Resolver resolves fields against an ordered set of registries.
type Resolver struct {
	registries []*Registry
}

// NewResolver creates a resolver over the given registries. Order matters:
// mappings are returned in registry order.
func NewResolver(registries ...*Registry) *Resolver {
	regs := make([]*Registry, 0, len(registries))
	for _, r := range registries {
		if r != nil {
			regs = append(regs, r)
		}
	}
	return &Resolver{registries: regs}
}

// Registries returns the configured registries.
func (r *Resolver) Registries() []*Registry {
	out := make([]*Registry, len(r.registries))
	copy(out, r.registries)
	return out
}

// Resolve returns every mapping of field, one per registry that knows it.
// Returns an UNMAPPABLE_FIELD error when no registry does.
func (r *Resolver) Resolve(field queryir.Field) ([]Mapping, error) {
	var mappings []Mapping
	for _, reg := range r.registries {
		if m, ok := reg.Lookup(field); ok {
			mappings = append(mappings, m)
		}
	}
	if len(mappings) == 0 {
		return nil, queryir.NewUnmappableFieldError(field)
	}
	return mappings, nil
}
