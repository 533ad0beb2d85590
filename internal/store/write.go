package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
)

// column is one value to write through a registry mapping.
type column struct {
	field queryir.Field
	value ir.IRValue
}

// InsertEvent inserts an event and returns its id. A missing UID is
// generated; missing created/modified/timestamp dates default to now.
func (s *Store) InsertEvent(ctx context.Context, ev Event) (int64, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	if ev.UID == "" {
		ev.UID = s.newUID()
	}
	if ev.Created.IsZero() {
		ev.Created = now
	}
	if ev.LastModified.IsZero() {
		ev.LastModified = ev.Created
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = ev.LastModified
	}
	if ev.Classification == "" {
		ev.Classification = "PUBLIC"
	}
	if ev.Transparency == "" {
		ev.Transparency = "OPAQUE"
	}

	id, err := s.insertRow(ctx, s.schema.Events, nil, []column{
		{calendar.EventSeriesID, optionalInt(ev.SeriesID)},
		{calendar.EventFolder, ir.IRInt(ev.Folder)},
		{calendar.EventUID, ir.IRString(ev.UID)},
		{calendar.EventSummary, optionalString(ev.Summary)},
		{calendar.EventLocation, optionalString(ev.Location)},
		{calendar.EventDescription, optionalString(ev.Description)},
		{calendar.EventClass, ir.IRString(ev.Classification)},
		{calendar.EventTransparency, ir.IRString(ev.Transparency)},
		{calendar.EventStatus, optionalString(ev.Status)},
		{calendar.EventStartDate, ir.NewIRTime(ev.StartDate)},
		{calendar.EventEndDate, ir.NewIRTime(ev.EndDate)},
		{calendar.EventAllDay, ir.IRBool(ev.AllDay)},
		{calendar.EventCreated, ir.NewIRTime(ev.Created)},
		{calendar.EventLastModified, ir.NewIRTime(ev.LastModified)},
		{calendar.EventCreatedBy, ir.IRInt(ev.CreatedBy)},
		{calendar.EventModifiedBy, ir.IRInt(ev.ModifiedBy)},
		{calendar.EventCalendarUser, optionalInt(ev.CalendarUser)},
		{calendar.EventOrganizer, optionalString(ev.Organizer)},
		{calendar.EventSequence, ir.IRInt(ev.Sequence)},
		{calendar.EventURL, optionalString(ev.URL)},
		{calendar.EventColor, optionalString(ev.Color)},
		{calendar.EventRecurrence, optionalString(ev.RRule)},
		{calendar.EventTimestamp, ir.NewIRTime(ev.Timestamp)},
	})
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// InsertAttendee inserts an internal attendee of eventID.
func (s *Store) InsertAttendee(ctx context.Context, eventID int64, at Attendee) (int64, error) {
	columns := append([]column{
		{calendar.AttendeeEntity, ir.IRInt(at.Entity)},
		{calendar.AttendeeFolder, optionalInt(at.Folder)},
		{calendar.AttendeeHidden, ir.IRBool(at.Hidden)},
	}, attendeeColumns(at)...)

	id, err := s.insertRow(ctx, s.schema.InternalAttendees, map[string]any{"event_id": eventID}, columns)
	if err != nil {
		return 0, fmt.Errorf("insert attendee: %w", err)
	}
	return id, nil
}

// InsertExternalAttendee inserts an external attendee of eventID.
func (s *Store) InsertExternalAttendee(ctx context.Context, eventID int64, at Attendee) (int64, error) {
	id, err := s.insertRow(ctx, s.schema.ExternalAttendees, map[string]any{"event_id": eventID}, attendeeColumns(at))
	if err != nil {
		return 0, fmt.Errorf("insert external attendee: %w", err)
	}
	return id, nil
}

func attendeeColumns(at Attendee) []column {
	cutype := at.CUType
	if cutype == "" {
		cutype = "INDIVIDUAL"
	}
	return []column{
		{calendar.AttendeeURI, ir.IRString(at.URI)},
		{calendar.AttendeeCN, optionalString(at.CN)},
		{calendar.AttendeeEmail, optionalString(at.Email)},
		{calendar.AttendeeCUType, ir.IRString(cutype)},
		{calendar.AttendeeRole, optionalString(at.Role)},
		{calendar.AttendeePartStat, optionalString(at.PartStat)},
		{calendar.AttendeeRSVP, ir.IRBool(at.RSVP)},
		{calendar.AttendeeComment, optionalString(at.Comment)},
	}
}

// InsertAlarm inserts an alarm of eventID. A missing UID is generated.
func (s *Store) InsertAlarm(ctx context.Context, eventID int64, al Alarm) (int64, error) {
	if al.UID == "" {
		al.UID = s.newUID()
	}
	acknowledged := ir.IRValue(ir.IRNull{})
	if !al.Acknowledged.IsZero() {
		acknowledged = ir.NewIRTime(al.Acknowledged)
	}

	id, err := s.insertRow(ctx, s.schema.Alarms, nil, []column{
		{calendar.AlarmEvent, ir.IRInt(eventID)},
		{calendar.AlarmUID, ir.IRString(al.UID)},
		{calendar.AlarmUser, ir.IRInt(al.User)},
		{calendar.AlarmAction, ir.IRString(al.Action)},
		{calendar.AlarmTrigger, optionalString(al.Trigger)},
		{calendar.AlarmAcknowledged, acknowledged},
		{calendar.AlarmSummary, optionalString(al.Summary)},
	})
	if err != nil {
		return 0, fmt.Errorf("insert alarm: %w", err)
	}
	return id, nil
}

// InsertConference inserts a conference link of eventID.
func (s *Store) InsertConference(ctx context.Context, eventID int64, conf Conference) (int64, error) {
	id, err := s.insertRow(ctx, s.schema.Conferences, nil, []column{
		{calendar.ConferenceEvent, ir.IRInt(eventID)},
		{calendar.ConferenceURI, ir.IRString(conf.URI)},
		{calendar.ConferenceLabel, optionalString(conf.Label)},
		{calendar.ConferenceFeatures, optionalString(conf.Features)},
	})
	if err != nil {
		return 0, fmt.Errorf("insert conference: %w", err)
	}
	return id, nil
}

// insertRow writes one row into the registry's table. Field values are
// encoded with the registry codecs; raw values are written as given.
func (s *Store) insertRow(ctx context.Context, reg *mapping.Registry, raw map[string]any, columns []column) (int64, error) {
	names := make([]string, 0, len(columns)+len(raw))
	args := make([]any, 0, len(columns)+len(raw))

	for name, value := range raw {
		names = append(names, name)
		args = append(args, value)
	}
	for _, col := range columns {
		m, ok := reg.Lookup(col.field)
		if !ok {
			return 0, queryir.NewUnmappableFieldError(col.field)
		}
		value, err := m.Encode(col.field, col.value)
		if err != nil {
			return 0, err
		}
		names = append(names, m.Column)
		args = append(args, value)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	query := "INSERT INTO " + reg.Table() + " (" + strings.Join(names, ", ") + ") VALUES (" + placeholders + ")"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func optionalString(s string) ir.IRValue {
	if s == "" {
		return ir.IRNull{}
	}
	return ir.IRString(s)
}

func optionalInt(n int64) ir.IRValue {
	if n == 0 {
		return ir.IRNull{}
	}
	return ir.IRInt(n)
}
