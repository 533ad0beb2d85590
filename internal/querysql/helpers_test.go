package querysql

import (
	"strings"

	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// Fields of the test registries.
const (
	fieldSummary  queryir.Field = "summary"
	fieldEntity   queryir.Field = "entity"
	fieldSeriesID queryir.Field = "series_id"
	fieldURI      queryir.Field = "uri"
	fieldCN       queryir.Field = "cn"
)

// documentRegistry is a single-table registry aliased "d".
func documentRegistry() *mapping.Registry {
	return mapping.NewRegistry("document", "doc", "d", mapping.GroupNone,
		mapping.Descriptor{Field: fieldSummary, Column: "summary", Type: mapping.TypeVarchar},
		mapping.Descriptor{Field: fieldEntity, Column: "entity", Type: mapping.TypeInteger},
		mapping.Descriptor{Field: fieldSeriesID, Column: "series_id", Type: mapping.TypeInteger},
	)
}

// taggedRegistry stores entity as text, with no alias.
func taggedRegistry() *mapping.Registry {
	return mapping.NewRegistry("tagged", "tagged", "", mapping.GroupNone,
		mapping.Descriptor{Field: fieldEntity, Column: "entity", Type: mapping.TypeVarchar},
	)
}

// attendeeRegistries are two tables carrying the same fields, one per join group.
func attendeeRegistries() (*mapping.Registry, *mapping.Registry) {
	internal := mapping.NewRegistry("internal", "attendee", "internal", mapping.GroupInternalAttendees,
		mapping.Descriptor{Field: fieldURI, Column: "uri", Type: mapping.TypeVarchar},
		mapping.Descriptor{Field: fieldCN, Column: "cn", Type: mapping.TypeVarchar},
	)
	external := mapping.NewRegistry("external", "attendee_external", "external", mapping.GroupExternalAttendees,
		mapping.Descriptor{Field: fieldURI, Column: "uri", Type: mapping.TypeVarchar},
		mapping.Descriptor{Field: fieldCN, Column: "cn", Type: mapping.TypeVarchar},
	)
	return internal, external
}

func documentResolver() *mapping.Resolver {
	return mapping.NewResolver(documentRegistry())
}

func attendeeResolver() *mapping.Resolver {
	return mapping.NewResolver(attendeeRegistries())
}

// compileOne compiles a single term with a fresh adapter.
func compileOne(resolver *mapping.Resolver, term queryir.Term, opts ...Option) (string, []any, *Adapter, error) {
	adapter := NewAdapter(resolver, opts...)
	if err := adapter.Append(term); err != nil {
		return "", nil, adapter, err
	}
	return adapter.Clause(), adapter.Parameters(), adapter, nil
}

func countPlaceholders(sql string) int {
	return strings.Count(sql, "?")
}
