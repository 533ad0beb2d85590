package celquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
	"github.com/roach88/calsearch/internal/querysql"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want queryir.Term
	}{
		{
			name: "equality",
			expr: `summary == "Standup"`,
			want: queryir.Equals("summary", ir.IRString("Standup")),
		},
		{
			name: "dotted field",
			expr: `attendee.partstat != "DECLINED"`,
			want: queryir.NotEquals("attendee.partstat", ir.IRString("DECLINED")),
		},
		{
			name: "ordering",
			expr: `sequence >= 2`,
			want: queryir.Compare(queryir.OpGreaterOrEqual, "sequence", ir.IRInt(2)),
		},
		{
			name: "constant on the left is mirrored",
			expr: `2 < sequence`,
			want: queryir.Compare(queryir.OpGreaterThan, "sequence", ir.IRInt(2)),
		},
		{
			name: "negative literal",
			expr: `sequence > -1`,
			want: queryir.Compare(queryir.OpGreaterThan, "sequence", ir.IRInt(-1)),
		},
		{
			name: "integral double",
			expr: `folder == 12.0`,
			want: queryir.Equals("folder", ir.IRInt(12)),
		},
		{
			name: "boolean",
			expr: `all_day == true`,
			want: queryir.Equals("all_day", ir.IRBool(true)),
		},
		{
			name: "null",
			expr: `series_id == null`,
			want: queryir.IsNull("series_id"),
		},
		{
			name: "not null",
			expr: `null != series_id`,
			want: queryir.IsNotNull("series_id"),
		},
		{
			name: "field to field",
			expr: `created_by == modified_by`,
			want: queryir.CompareFields(queryir.OpEquals, "created_by", "modified_by"),
		},
		{
			name: "in list",
			expr: `folder in [10, 11]`,
			want: queryir.In("folder", ir.IRInt(10), ir.IRInt(11)),
		},
		{
			name: "chains are flattened",
			expr: `folder == 1 || folder == 2 || folder == 3`,
			want: queryir.Or(
				queryir.Equals("folder", ir.IRInt(1)),
				queryir.Equals("folder", ir.IRInt(2)),
				queryir.Equals("folder", ir.IRInt(3)),
			),
		},
		{
			name: "mixed combinators",
			expr: `summary == "a" && !(status == "CANCELLED" || status == "TENTATIVE")`,
			want: queryir.And(
				queryir.Equals("summary", ir.IRString("a")),
				queryir.Not(queryir.Or(
					queryir.Equals("status", ir.IRString("CANCELLED")),
					queryir.Equals("status", ir.IRString("TENTATIVE")),
				)),
			),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		expr string
	}{
		{"empty", "   "},
		{"syntax", `summary ==`},
		{"bare identifier", `all_day`},
		{"constant only", `true`},
		{"two constants", `1 == 1`},
		{"function call", `summary.startsWith("S")`},
		{"null ordering", `series_id < null`},
		{"fraction", `folder == 1.5`},
		{"float beyond int64", `start_date >= 9223372036854775808.0`},
		{"in without list", `folder in folders`},
		{"empty in", `folder in []`},
		{"null in list", `folder in [1, null]`},
		{"has macro", `has(event.summary)`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.expr)
			assert.Error(t, err)
		})
	}
}

func TestParse_CompilesToFoldedClause(t *testing.T) {
	term, err := Parse(`attendee.uri in [7, "mailto:bob@example.com"] && summary == "Stand*"`)
	require.NoError(t, err)

	adapter := querysql.NewAdapter(calendar.NewSchema(3).EventResolver())
	require.NoError(t, adapter.Append(term))

	assert.Equal(t, "((a.uri IN (?,?) OR x.uri IN (?,?)) AND (e.summary LIKE ?))", adapter.Clause())
	assert.Equal(t, []any{
		"urn:calsearch:ctx:3:user:7", "mailto:bob@example.com",
		"urn:calsearch:ctx:3:user:7", "mailto:bob@example.com",
		"Stand%",
	}, adapter.Parameters())
	assert.True(t, adapter.UsesInternalAttendees())
	assert.True(t, adapter.UsesExternalAttendees())
}
