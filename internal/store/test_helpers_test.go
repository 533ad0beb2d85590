package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, time.UTC)
}

// seedCalendar inserts three events:
//
//	1 "Standup"        folder 10, confirmed, internal attendee 7 (accepted), external bob (declined)
//	2 "Sprint review"  folder 10, tentative, private, recurring, display alarm, conference link
//	3 "Standing lunch" folder 11, cancelled, external bob (accepted)
func seedCalendar(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	standup, err := s.InsertEvent(ctx, Event{
		Folder:     10,
		Summary:    "Standup",
		Status:     "CONFIRMED",
		StartDate:  at(17, 9, 0),
		EndDate:    at(17, 9, 15),
		CreatedBy:  7,
		ModifiedBy: 7,
		Organizer:  "7",
	})
	if err != nil {
		t.Fatalf("InsertEvent() failed: %v", err)
	}
	if _, err := s.InsertAttendee(ctx, standup, Attendee{Entity: 7, URI: "7", PartStat: "ACCEPTED"}); err != nil {
		t.Fatalf("InsertAttendee() failed: %v", err)
	}
	if _, err := s.InsertExternalAttendee(ctx, standup, Attendee{URI: "mailto:bob@example.com", PartStat: "DECLINED"}); err != nil {
		t.Fatalf("InsertExternalAttendee() failed: %v", err)
	}

	review, err := s.InsertEvent(ctx, Event{
		SeriesID:       2,
		Folder:         10,
		Summary:        "Sprint review",
		Classification: "PRIVATE",
		Status:         "TENTATIVE",
		StartDate:      at(17, 14, 0),
		EndDate:        at(17, 15, 0),
		CreatedBy:      7,
		ModifiedBy:     7,
		RRule:          "FREQ=WEEKLY;BYDAY=FR",
	})
	if err != nil {
		t.Fatalf("InsertEvent() failed: %v", err)
	}
	if _, err := s.InsertAlarm(ctx, review, Alarm{User: 7, Action: "DISPLAY", Trigger: "-PT15M"}); err != nil {
		t.Fatalf("InsertAlarm() failed: %v", err)
	}
	if _, err := s.InsertConference(ctx, review, Conference{URI: "https://meet.example.com/abc", Label: "Video"}); err != nil {
		t.Fatalf("InsertConference() failed: %v", err)
	}

	lunch, err := s.InsertEvent(ctx, Event{
		Folder:     11,
		Summary:    "Standing lunch",
		Status:     "CANCELLED",
		StartDate:  at(18, 12, 0),
		EndDate:    at(18, 13, 0),
		CreatedBy:  8,
		ModifiedBy: 8,
	})
	if err != nil {
		t.Fatalf("InsertEvent() failed: %v", err)
	}
	if _, err := s.InsertExternalAttendee(ctx, lunch, Attendee{URI: "mailto:bob@example.com", PartStat: "ACCEPTED"}); err != nil {
		t.Fatalf("InsertExternalAttendee() failed: %v", err)
	}
}
