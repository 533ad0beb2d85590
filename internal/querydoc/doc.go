// Package querydoc reads search queries from YAML or CUE documents.
//
// A document names the SQL flavor and the term tree:
//
//	dialect: sqlite
//	charset: ""
//	prefixes:
//	  event: ev
//	query:
//	  op: and
//	  terms:
//	    - {op: equals, field: summary, value: "Stand*"}
//	    - {op: in, field: attendee.partstat, values: [accepted, tentative]}
//	    - op: not
//	      terms:
//	        - {op: is_null, field: series_id}
//
// Comparison nodes use any operation name or alias known to
// queryir.LookupOperation. A comparison between two fields uses
// other_field instead of value. "in" expands to an OR of equalities.
//
// Unknown keys are rejected in both formats.
package querydoc
