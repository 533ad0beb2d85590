// Package calendar defines the calendar search fields and the static
// registries mapping them onto the calendar schema.
//
// Each entity group has one registry:
//
//	event              calendar_event               e
//	attendee.internal  calendar_attendee            a   (join group internal_attendees)
//	attendee.external  calendar_attendee_external   x   (join group external_attendees)
//	alarm              calendar_alarm               al  (join group alarms)
//	account            calendar_account             acc
//	conference         calendar_conference          c   (join group conferences)
//
// Attendee fields exist in both attendee registries, so an attendee
// comparison in an event search is rendered against both tables.
package calendar
