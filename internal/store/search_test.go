package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/ir"
	"github.com/roach88/calsearch/internal/queryir"
	"github.com/roach88/calsearch/internal/querysql"
)

func eventIDs(events []Event) []int64 {
	ids := make([]int64, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	return ids
}

func TestSearchEvents(t *testing.T) {
	s := createTestStore(t)
	seedCalendar(t, s)

	testCases := []struct {
		name string
		term queryir.Term
		want []int64
	}{
		{
			name: "no filter",
			term: nil,
			want: []int64{1, 2, 3},
		},
		{
			name: "summary wildcard",
			term: queryir.Equals(calendar.EventSummary, ir.IRString("Stand*")),
			want: []int64{1, 3},
		},
		{
			name: "summary exact",
			term: queryir.Equals(calendar.EventSummary, ir.IRString("Sprint review")),
			want: []int64{2},
		},
		{
			name: "external attendee uri",
			term: queryir.Equals(calendar.AttendeeURI, ir.IRString("mailto:bob@example.com")),
			want: []int64{1, 3},
		},
		{
			name: "internal attendee by user id",
			term: queryir.Equals(calendar.AttendeeURI, ir.IRInt(7)),
			want: []int64{1},
		},
		{
			name: "participation status in either table",
			term: queryir.Equals(calendar.AttendeePartStat, ir.IRString("accepted")),
			want: []int64{1, 3},
		},
		{
			name: "folder in list",
			term: queryir.In(calendar.EventFolder, ir.IRInt(11), ir.IRInt(12)),
			want: []int64{3},
		},
		{
			name: "folder and not tentative",
			term: queryir.And(
				queryir.Equals(calendar.EventFolder, ir.IRInt(10)),
				queryir.Not(queryir.Equals(calendar.EventStatus, ir.IRString("tentative"))),
			),
			want: []int64{1},
		},
		{
			name: "alarm action",
			term: queryir.Equals(calendar.AlarmAction, ir.IRString("display")),
			want: []int64{2},
		},
		{
			name: "has conference",
			term: queryir.IsNotNull(calendar.ConferenceURI),
			want: []int64{2},
		},
		{
			name: "single events",
			term: queryir.IsNull(calendar.EventSeriesID),
			want: []int64{1, 3},
		},
		{
			name: "starts after noon",
			term: queryir.Compare(queryir.OpGreaterOrEqual, calendar.EventStartDate, ir.IRString("2026-10-17T12:00:00Z")),
			want: []int64{2, 3},
		},
		{
			name: "classification",
			term: queryir.Equals(calendar.EventClass, ir.IRString("private")),
			want: []int64{2},
		},
		{
			name: "organizer",
			term: queryir.Equals(calendar.EventOrganizer, ir.IRInt(7)),
			want: []int64{1},
		},
		{
			name: "nothing matches",
			term: queryir.Equals(calendar.EventSummary, ir.IRString("Retro")),
			want: []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := s.SearchEvents(context.Background(), tc.term)
			require.NoError(t, err)
			assert.Equal(t, tc.want, eventIDs(events))
		})
	}
}

func TestSearchEvents_FoldingDoesNotChangeResults(t *testing.T) {
	s := createTestStore(t)
	seedCalendar(t, s)

	term := queryir.Or(
		queryir.In(calendar.AttendeePartStat, ir.IRString("accepted"), ir.IRString("declined")),
		queryir.In(calendar.EventFolder, ir.IRInt(11), ir.IRInt(99)),
	)

	folded, err := s.SearchEvents(context.Background(), term)
	require.NoError(t, err)
	unfolded, err := s.SearchEvents(context.Background(), term, querysql.WithoutINFolding())
	require.NoError(t, err)

	assert.Equal(t, eventIDs(unfolded), eventIDs(folded))
	assert.Equal(t, []int64{1, 3}, eventIDs(folded))
}

func TestSearchEvents_DecodesColumns(t *testing.T) {
	s := createTestStore(t)
	seedCalendar(t, s)

	events, err := s.SearchEvents(context.Background(),
		queryir.Equals(calendar.EventSummary, ir.IRString("Standup")))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, int64(1), ev.ID)
	assert.Equal(t, int64(0), ev.SeriesID)
	assert.Equal(t, int64(10), ev.Folder)
	assert.Equal(t, "PUBLIC", ev.Classification)
	assert.Equal(t, "OPAQUE", ev.Transparency)
	assert.Equal(t, "CONFIRMED", ev.Status)
	assert.Equal(t, "7", ev.Organizer)
	assert.True(t, ev.StartDate.Equal(at(17, 9, 0)))
	assert.True(t, ev.EndDate.Equal(at(17, 9, 15)))
	assert.False(t, ev.AllDay)
	assert.Empty(t, ev.Location)

	_, err = uuid.Parse(ev.UID)
	assert.NoError(t, err, "generated UID should be a UUID")
}

func TestSearchEvents_StoresEncodedForms(t *testing.T) {
	s := createTestStore(t)
	seedCalendar(t, s)

	var classification int64
	var status, organizer string
	err := s.DB().QueryRow(`SELECT classification, status, organizer FROM calendar_event WHERE id = 1`).
		Scan(&classification, &status, &organizer)
	require.NoError(t, err)

	assert.Equal(t, int64(1), classification)
	assert.Equal(t, "C", status)
	assert.Equal(t, calendar.ResourceURI(1, 7), organizer)
}

func TestSearchEvents_Errors(t *testing.T) {
	s := createTestStore(t)

	_, err := s.SearchEvents(context.Background(), queryir.Equals("no_such_field", ir.IRInt(1)))
	require.Error(t, err)
	assert.True(t, queryir.IsUnmappableField(err))

	_, err = s.SearchEvents(context.Background(),
		queryir.Equals(calendar.AttendeeURI, ir.IRString(calendar.ResourceURI(2, 7))))
	require.Error(t, err)
	assert.True(t, queryir.IsInvalidOperand(err))
}

func TestInsertEvent_RejectsUnknownToken(t *testing.T) {
	s := createTestStore(t)

	_, err := s.InsertEvent(context.Background(), Event{
		Folder:         1,
		Classification: "SECRET",
		StartDate:      at(17, 9, 0),
		EndDate:        at(17, 10, 0),
	})
	require.Error(t, err)
	assert.True(t, queryir.IsInvalidOperand(err))
}
