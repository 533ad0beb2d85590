package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/queryir"
	"github.com/roach88/calsearch/internal/querysql"
)

// join is an optional LEFT JOIN added when the clause references its group.
type join struct {
	group    mapping.JoinGroup
	registry func(*calendar.Schema) *mapping.Registry
	on       string // join column of the joined table, matched to e.id
}

var optionalJoins = []join{
	{calendar.GroupInternalAttendees, func(s *calendar.Schema) *mapping.Registry { return s.InternalAttendees }, "event_id"},
	{calendar.GroupExternalAttendees, func(s *calendar.Schema) *mapping.Registry { return s.ExternalAttendees }, "event_id"},
	{calendar.GroupAlarms, func(s *calendar.Schema) *mapping.Registry { return s.Alarms }, "event"},
	{calendar.GroupConferences, func(s *calendar.Schema) *mapping.Registry { return s.Conferences }, "event"},
}

// SearchEvents returns the events matching term, ordered by id. A nil term
// matches every event.
//
// opts are applied after the SQLite dialect; they must not override table
// aliases, since the joins use the registry aliases.
func (s *Store) SearchEvents(ctx context.Context, term queryir.Term, opts ...querysql.Option) ([]Event, error) {
	adapter := querysql.NewAdapter(s.schema.EventResolver(),
		append([]querysql.Option{
			querysql.WithDialect(querysql.DialectSQLite),
			querysql.WithLogger(s.logger),
		}, opts...)...,
	)
	if term != nil {
		if err := adapter.Append(term); err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
	}

	query, args, err := s.buildEventQuery(adapter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	s.logger.Debug("searching events", "sql", query, "params", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	fields := s.schema.Events.Fields()
	events := []Event{}
	for rows.Next() {
		ev, err := s.scanEvent(rows, fields)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// buildEventQuery assembles the statement around the adapter's clause.
func (s *Store) buildEventQuery(adapter *querysql.Adapter) (string, []any, error) {
	events := s.schema.Events
	columns := []string{}
	for _, field := range events.Fields() {
		m, _ := events.Lookup(field)
		columns = append(columns, m.Label(events.Alias()))
	}

	var b strings.Builder
	b.WriteString("SELECT DISTINCT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM " + events.Table() + " " + events.Alias())

	for _, j := range optionalJoins {
		if !adapter.Uses(j.group) {
			continue
		}
		reg := j.registry(s.schema)
		fmt.Fprintf(&b, " LEFT JOIN %s %s ON %s.%s = %s.id",
			reg.Table(), reg.Alias(), reg.Alias(), j.on, events.Alias())
	}

	b.WriteString(" WHERE ")
	b.WriteString(adapter.Clause())
	b.WriteString(" ORDER BY " + events.Alias() + ".id ASC")

	binder := &querysql.ArgsBinder{}
	if _, err := adapter.SetParameters(binder, 1); err != nil {
		return "", nil, err
	}
	return b.String(), binder.Args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent decodes one row selected in registry field order.
func (s *Store) scanEvent(rows rowScanner, fields []queryir.Field) (Event, error) {
	raw := make([]any, len(fields))
	dest := make([]any, len(fields))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}

	values := make(map[queryir.Field]ir.IRValue, len(fields))
	for i, field := range fields {
		m, _ := s.schema.Events.Lookup(field)
		value, err := m.Decode(raw[i])
		if err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", field, err)
		}
		values[field] = value
	}

	return Event{
		ID:             asInt(values[calendar.EventID]),
		SeriesID:       asInt(values[calendar.EventSeriesID]),
		Folder:         asInt(values[calendar.EventFolder]),
		UID:            asString(values[calendar.EventUID]),
		Summary:        asString(values[calendar.EventSummary]),
		Location:       asString(values[calendar.EventLocation]),
		Description:    asString(values[calendar.EventDescription]),
		Classification: asString(values[calendar.EventClass]),
		Transparency:   asString(values[calendar.EventTransparency]),
		Status:         asString(values[calendar.EventStatus]),
		StartDate:      asTime(values[calendar.EventStartDate]),
		EndDate:        asTime(values[calendar.EventEndDate]),
		AllDay:         asBool(values[calendar.EventAllDay]),
		Created:        asTime(values[calendar.EventCreated]),
		LastModified:   asTime(values[calendar.EventLastModified]),
		CreatedBy:      asInt(values[calendar.EventCreatedBy]),
		ModifiedBy:     asInt(values[calendar.EventModifiedBy]),
		CalendarUser:   asInt(values[calendar.EventCalendarUser]),
		Organizer:      asString(values[calendar.EventOrganizer]),
		Sequence:       asInt(values[calendar.EventSequence]),
		URL:            asString(values[calendar.EventURL]),
		Color:          asString(values[calendar.EventColor]),
		RRule:          asString(values[calendar.EventRecurrence]),
		Timestamp:      asTime(values[calendar.EventTimestamp]),
	}, nil
}

func asString(v ir.IRValue) string {
	switch val := v.(type) {
	case ir.IRString:
		return string(val)
	case ir.IRInt:
		return strconv.FormatInt(int64(val), 10)
	default:
		return ""
	}
}

func asInt(v ir.IRValue) int64 {
	if n, ok := v.(ir.IRInt); ok {
		return int64(n)
	}
	return 0
}

func asBool(v ir.IRValue) bool {
	b, ok := v.(ir.IRBool)
	return ok && bool(b)
}

func asTime(v ir.IRValue) time.Time {
	if t, ok := v.(ir.IRTime); ok {
		return t.Time()
	}
	return time.Time{}
}
