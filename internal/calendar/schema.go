package calendar

import (
	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// Join groups of the optional tables joined to calendar_event.
const (
	GroupInternalAttendees mapping.JoinGroup = mapping.GroupInternalAttendees
	GroupExternalAttendees mapping.JoinGroup = mapping.GroupExternalAttendees
	GroupAlarms            mapping.JoinGroup = "alarms"
	GroupConferences       mapping.JoinGroup = "conferences"
)

// Schema bundles the registries of one context. Registries are immutable
// and may be shared by any number of concurrent searches.
type Schema struct {
	ContextID         int64
	Events            *mapping.Registry
	InternalAttendees *mapping.Registry
	ExternalAttendees *mapping.Registry
	Alarms            *mapping.Registry
	Accounts          *mapping.Registry
	Conferences       *mapping.Registry
}

// NewSchema builds the registries for a context. The context id is part of
// the resource identifiers stored for internal calendar users.
func NewSchema(contextID int64) *Schema {
	calendarUser := NewCalendarUserCodec(contextID)

	return &Schema{
		ContextID:         contextID,
		Events:            newEventRegistry(calendarUser),
		InternalAttendees: newInternalAttendeeRegistry(calendarUser),
		ExternalAttendees: newExternalAttendeeRegistry(calendarUser),
		Alarms:            newAlarmRegistry(),
		Accounts:          newAccountRegistry(),
		Conferences:       newConferenceRegistry(),
	}
}

// EventResolver resolves fields of event searches: event columns plus the
// optional attendee, alarm and conference joins.
func (s *Schema) EventResolver() *mapping.Resolver {
	return mapping.NewResolver(s.Events, s.InternalAttendees, s.ExternalAttendees, s.Alarms, s.Conferences)
}

// AttendeeResolver resolves attendee fields against both attendee tables.
func (s *Schema) AttendeeResolver() *mapping.Resolver {
	return mapping.NewResolver(s.InternalAttendees, s.ExternalAttendees)
}

// AlarmResolver resolves alarm fields.
func (s *Schema) AlarmResolver() *mapping.Resolver {
	return mapping.NewResolver(s.Alarms)
}

// AccountResolver resolves account fields.
func (s *Schema) AccountResolver() *mapping.Resolver {
	return mapping.NewResolver(s.Accounts)
}

// Registries returns all registries in a stable order.
func (s *Schema) Registries() []*mapping.Registry {
	return []*mapping.Registry{
		s.Events, s.InternalAttendees, s.ExternalAttendees, s.Alarms, s.Accounts, s.Conferences,
	}
}

func newEventRegistry(calendarUser *mapping.Codec) *mapping.Registry {
	return mapping.NewRegistry("event", "calendar_event", "e", mapping.GroupNone,
		desc(EventID, "id", mapping.TypeInteger, nil),
		desc(EventSeriesID, "series_id", mapping.TypeInteger, nil),
		desc(EventFolder, "folder", mapping.TypeInteger, nil),
		desc(EventUID, "uid", mapping.TypeVarchar, UIDCodec),
		desc(EventSummary, "summary", mapping.TypeVarchar, nil),
		desc(EventLocation, "location", mapping.TypeVarchar, nil),
		desc(EventDescription, "description", mapping.TypeText, nil),
		desc(EventClass, "classification", mapping.TypeTinyInt, ClassificationCodec),
		desc(EventTransparency, "transp", mapping.TypeChar, TransparencyCodec),
		desc(EventStatus, "status", mapping.TypeChar, EventStatusCodec),
		desc(EventStartDate, "start_date", mapping.TypeBigInt, mapping.EpochMillis),
		desc(EventEndDate, "end_date", mapping.TypeBigInt, mapping.EpochMillis),
		desc(EventAllDay, "all_day", mapping.TypeTinyInt, mapping.BoolAsInt),
		desc(EventCreated, "created", mapping.TypeBigInt, mapping.EpochMillis),
		desc(EventLastModified, "modified", mapping.TypeBigInt, mapping.EpochMillis),
		desc(EventCreatedBy, "created_by", mapping.TypeInteger, nil),
		desc(EventModifiedBy, "modified_by", mapping.TypeInteger, nil),
		desc(EventCalendarUser, "user", mapping.TypeInteger, nil),
		desc(EventOrganizer, "organizer", mapping.TypeVarchar, calendarUser),
		desc(EventSequence, "sequence", mapping.TypeInteger, nil),
		desc(EventURL, "url", mapping.TypeVarchar, nil),
		desc(EventColor, "color", mapping.TypeVarchar, nil),
		desc(EventRecurrence, "rrule", mapping.TypeVarchar, nil),
		desc(EventTimestamp, "timestamp", mapping.TypeBigInt, mapping.EpochMillis),
	)
}

// attendeeDescriptors are the columns shared by both attendee tables.
func attendeeDescriptors(calendarUser *mapping.Codec) []mapping.Descriptor {
	return []mapping.Descriptor{
		desc(AttendeeURI, "uri", mapping.TypeVarchar, calendarUser),
		desc(AttendeeCN, "cn", mapping.TypeVarchar, nil),
		desc(AttendeeEmail, "email", mapping.TypeVarchar, nil),
		desc(AttendeeCUType, "cutype", mapping.TypeTinyInt, CUTypeCodec),
		desc(AttendeeRole, "role", mapping.TypeVarchar, RoleCodec),
		desc(AttendeePartStat, "partstat", mapping.TypeVarchar, PartStatCodec),
		desc(AttendeeRSVP, "rsvp", mapping.TypeTinyInt, mapping.BoolAsInt),
		desc(AttendeeComment, "comment", mapping.TypeText, nil),
	}
}

func newInternalAttendeeRegistry(calendarUser *mapping.Codec) *mapping.Registry {
	descriptors := append([]mapping.Descriptor{
		desc(AttendeeEntity, "entity", mapping.TypeInteger, nil),
		desc(AttendeeFolder, "folder", mapping.TypeInteger, nil),
		desc(AttendeeHidden, "hidden", mapping.TypeTinyInt, mapping.BoolAsInt),
	}, attendeeDescriptors(calendarUser)...)
	return mapping.NewRegistry("attendee.internal", "calendar_attendee", "a", GroupInternalAttendees, descriptors...)
}

func newExternalAttendeeRegistry(calendarUser *mapping.Codec) *mapping.Registry {
	return mapping.NewRegistry("attendee.external", "calendar_attendee_external", "x", GroupExternalAttendees,
		attendeeDescriptors(calendarUser)...)
}

func newAlarmRegistry() *mapping.Registry {
	return mapping.NewRegistry("alarm", "calendar_alarm", "al", GroupAlarms,
		desc(AlarmID, "id", mapping.TypeInteger, nil),
		desc(AlarmEvent, "event", mapping.TypeInteger, nil),
		desc(AlarmUID, "uid", mapping.TypeVarchar, UIDCodec),
		desc(AlarmUser, "user", mapping.TypeInteger, nil),
		desc(AlarmAction, "action", mapping.TypeVarchar, AlarmActionCodec),
		desc(AlarmTrigger, "trigger_value", mapping.TypeVarchar, nil),
		desc(AlarmAcknowledged, "acknowledged", mapping.TypeBigInt, mapping.EpochMillis),
		desc(AlarmSummary, "summary", mapping.TypeVarchar, nil),
	)
}

func newAccountRegistry() *mapping.Registry {
	return mapping.NewRegistry("account", "calendar_account", "acc", mapping.GroupNone,
		desc(AccountID, "id", mapping.TypeInteger, nil),
		desc(AccountUser, "user", mapping.TypeInteger, nil),
		desc(AccountProvider, "provider", mapping.TypeVarchar, nil),
		desc(AccountLastModified, "modified", mapping.TypeBigInt, mapping.EpochMillis),
		desc(AccountEnabled, "enabled", mapping.TypeTinyInt, mapping.BoolAsInt),
	)
}

func newConferenceRegistry() *mapping.Registry {
	return mapping.NewRegistry("conference", "calendar_conference", "c", GroupConferences,
		desc(ConferenceID, "id", mapping.TypeInteger, nil),
		desc(ConferenceEvent, "event", mapping.TypeInteger, nil),
		desc(ConferenceURI, "uri", mapping.TypeVarchar, nil),
		desc(ConferenceLabel, "label", mapping.TypeVarchar, nil),
		desc(ConferenceFeatures, "features", mapping.TypeVarchar, nil),
	)
}

func desc(field queryir.Field, column string, typ mapping.SQLType, codec *mapping.Codec) mapping.Descriptor {
	return mapping.Descriptor{Field: field, Column: column, Type: typ, Codec: codec}
}
