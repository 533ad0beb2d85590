package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
)

func testRegistries() (*Registry, *Registry, *Registry) {
	events := NewRegistry("event", "calendar_event", "d", GroupNone,
		Descriptor{Field: "summary", Column: "summary", Type: TypeVarchar},
		Descriptor{Field: "sequence", Column: "sequence", Type: TypeInteger},
	)
	internal := NewRegistry("attendee.internal", "calendar_attendee", "internal", GroupInternalAttendees,
		Descriptor{Field: "attendee.uri", Column: "uri", Type: TypeVarchar},
		Descriptor{Field: "attendee.entity", Column: "entity", Type: TypeInteger},
	)
	external := NewRegistry("attendee.external", "calendar_attendee_external", "external", GroupExternalAttendees,
		Descriptor{Field: "attendee.uri", Column: "uri", Type: TypeVarchar},
	)
	return events, internal, external
}

func TestResolve_SingleMapping(t *testing.T) {
	events, internal, external := testRegistries()
	resolver := NewResolver(events, internal, external)

	mappings, err := resolver.Resolve("summary")
	require.NoError(t, err)
	require.Len(t, mappings, 1)

	m := mappings[0]
	assert.Equal(t, "event", m.Registry)
	assert.Equal(t, "d", m.Alias)
	assert.Equal(t, "summary", m.Column)
	assert.Equal(t, GroupNone, m.Group)
	assert.Equal(t, "d.summary", m.Label(m.Alias))
	assert.Equal(t, "summary", m.Label(""))
}

func TestResolve_DualMappingInRegistryOrder(t *testing.T) {
	events, internal, external := testRegistries()
	resolver := NewResolver(events, internal, external)

	mappings, err := resolver.Resolve("attendee.uri")
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	assert.Equal(t, "internal.uri", mappings[0].Label(mappings[0].Alias))
	assert.Equal(t, GroupInternalAttendees, mappings[0].Group)
	assert.Equal(t, "external.uri", mappings[1].Label(mappings[1].Alias))
	assert.Equal(t, GroupExternalAttendees, mappings[1].Group)
}

func TestResolve_OnlyConfiguredRegistries(t *testing.T) {
	events, internal, _ := testRegistries()
	resolver := NewResolver(events, nil, internal)

	mappings, err := resolver.Resolve("attendee.uri")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "attendee.internal", mappings[0].Registry)
	assert.Len(t, resolver.Registries(), 2)
}

func TestResolve_UnmappableField(t *testing.T) {
	events, _, _ := testRegistries()
	resolver := NewResolver(events)

	_, err := resolver.Resolve("attendee.uri")
	require.Error(t, err)
	assert.True(t, queryir.IsUnmappableField(err))
	assert.Contains(t, err.Error(), "field=attendee.uri")
}

func TestNewRegistry_PanicsOnDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry("dup", "t", "t", GroupNone,
			Descriptor{Field: "a", Column: "a", Type: TypeInteger},
			Descriptor{Field: "a", Column: "b", Type: TypeInteger},
		)
	})
	assert.Panics(t, func() {
		NewRegistry("empty", "t", "t", GroupNone, Descriptor{Field: "a", Type: TypeInteger})
	})
}

func TestRegistry_FieldsAreCopied(t *testing.T) {
	events, _, _ := testRegistries()

	fields := events.Fields()
	fields[0] = "mutated"

	assert.Equal(t, []queryir.Field{"summary", "sequence"}, events.Fields())
	assert.Equal(t, "calendar_event", events.Table())
	assert.Equal(t, "event", events.Name())
}

func TestMapping_EncodeWrapsErrors(t *testing.T) {
	events, _, _ := testRegistries()
	m, ok := events.Lookup("sequence")
	require.True(t, ok)

	v, err := m.Encode("sequence", ir.IRString("12"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	_, err = m.Encode("sequence", ir.IRString("twelve"))
	require.Error(t, err)
	assert.True(t, queryir.IsInvalidOperand(err))
	assert.Contains(t, err.Error(), "integer codec for d.sequence")

	v, err = m.Encode("sequence", ir.IRNull{})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLType_Classes(t *testing.T) {
	assert.True(t, TypeVarchar.IsText())
	assert.True(t, TypeChar.IsText())
	assert.False(t, TypeInteger.IsText())
	assert.True(t, TypeBigInt.IsInteger())
	assert.False(t, TypeTimestamp.IsInteger())
}
