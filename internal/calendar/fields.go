package calendar

import "github.com/roach88/calsearch/internal/queryir"

// Event fields.
const (
	EventID           queryir.Field = "id"
	EventSeriesID     queryir.Field = "series_id"
	EventFolder       queryir.Field = "folder"
	EventUID          queryir.Field = "uid"
	EventSummary      queryir.Field = "summary"
	EventLocation     queryir.Field = "location"
	EventDescription  queryir.Field = "description"
	EventClass        queryir.Field = "classification"
	EventTransparency queryir.Field = "transparency"
	EventStatus       queryir.Field = "status"
	EventStartDate    queryir.Field = "start_date"
	EventEndDate      queryir.Field = "end_date"
	EventAllDay       queryir.Field = "all_day"
	EventCreated      queryir.Field = "created"
	EventLastModified queryir.Field = "last_modified"
	EventCreatedBy    queryir.Field = "created_by"
	EventModifiedBy   queryir.Field = "modified_by"
	EventCalendarUser queryir.Field = "calendar_user"
	EventOrganizer    queryir.Field = "organizer"
	EventSequence     queryir.Field = "sequence"
	EventURL          queryir.Field = "url"
	EventColor        queryir.Field = "color"
	EventRecurrence   queryir.Field = "rrule"
	EventTimestamp    queryir.Field = "timestamp"
)

// Attendee fields. Fields marked internal-only have no column in the
// external attendee table.
const (
	AttendeeEntity   queryir.Field = "attendee.entity" // internal only
	AttendeeFolder   queryir.Field = "attendee.folder" // internal only
	AttendeeHidden   queryir.Field = "attendee.hidden" // internal only
	AttendeeURI      queryir.Field = "attendee.uri"
	AttendeeCN       queryir.Field = "attendee.cn"
	AttendeeEmail    queryir.Field = "attendee.email"
	AttendeeCUType   queryir.Field = "attendee.cutype"
	AttendeeRole     queryir.Field = "attendee.role"
	AttendeePartStat queryir.Field = "attendee.partstat"
	AttendeeRSVP     queryir.Field = "attendee.rsvp"
	AttendeeComment  queryir.Field = "attendee.comment"
)

// Alarm fields.
const (
	AlarmID           queryir.Field = "alarm.id"
	AlarmEvent        queryir.Field = "alarm.event"
	AlarmUID          queryir.Field = "alarm.uid"
	AlarmUser         queryir.Field = "alarm.user"
	AlarmAction       queryir.Field = "alarm.action"
	AlarmTrigger      queryir.Field = "alarm.trigger"
	AlarmAcknowledged queryir.Field = "alarm.acknowledged"
	AlarmSummary      queryir.Field = "alarm.summary"
)

// Account fields.
const (
	AccountID           queryir.Field = "account.id"
	AccountUser         queryir.Field = "account.user"
	AccountProvider     queryir.Field = "account.provider"
	AccountLastModified queryir.Field = "account.last_modified"
	AccountEnabled      queryir.Field = "account.enabled"
)

// Conference fields.
const (
	ConferenceID       queryir.Field = "conference.id"
	ConferenceEvent    queryir.Field = "conference.event"
	ConferenceURI      queryir.Field = "conference.uri"
	ConferenceLabel    queryir.Field = "conference.label"
	ConferenceFeatures queryir.Field = "conference.features"
)
