// Package store provides SQLite-backed storage for calendar events and the
// statement assembly around compiled search clauses.
//
// Tables:
//   - calendar_event: one row per event
//   - calendar_attendee: attendees that are users of the context
//   - calendar_attendee_external: all other attendees
//   - calendar_alarm, calendar_conference: per-event children
//   - calendar_account: calendar accounts of users
//
// Writes encode every value through the calendar registries, so stored
// forms are exactly the forms the search compiler binds.
//
// # Searching
//
// SearchEvents compiles a queryir term with the SQLite dialect and adds a
// LEFT JOIN only for the optional tables the compiled clause references.
// Results are de-duplicated and ordered by e.id, so identical data always
// yields identical result order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
