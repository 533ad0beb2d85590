// Package querysql compiles queryir search terms into parameterized SQL
// condition fragments.
//
// The Adapter is the entry point. It is fed one or more terms, resolves
// each referenced field through a mapping.Resolver, encodes constants with
// the mapping codecs and accumulates:
//
//   - the clause text, to be spliced into a WHERE clause by the caller
//   - the bind parameters, in placeholder order (left-to-right, depth-first)
//   - join flags, telling the caller which optional tables the clause uses
//
// Example:
//
//	adapter := querysql.NewAdapter(schema.EventResolver(), querysql.WithDialect(querysql.DialectSQLite))
//	if err := adapter.Append(queryir.Equals(calendar.EventSummary, ir.IRString("Standup"))); err != nil {
//	    return err
//	}
//	query := "SELECT e.id FROM calendar_event e WHERE " + adapter.Clause()
//	binder := &querysql.ArgsBinder{}
//	if _, err := adapter.SetParameters(binder, 1); err != nil {
//	    return err
//	}
//	rows, err := db.QueryContext(ctx, query, binder.Args...)
//
// CRITICAL: constants are NEVER interpolated into the SQL text; every value
// is bound through a placeholder.
//
// OR terms whose children all compare one field for equality are folded
// into "column IN (?,?,...)". The fold is skipped entirely as soon as one
// constant of the group carries a wildcard.
//
// An Adapter is not safe for concurrent use. Create one per statement.
package querysql
