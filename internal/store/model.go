package store

import "time"

// Event is a calendar event row. Enum-like fields carry their tokens
// (e.g. Classification "PRIVATE"); the registries translate them to stored
// forms. Calendar users are numeric user ids or external URIs.
type Event struct {
	ID             int64
	SeriesID       int64 // 0 for single events
	Folder         int64
	UID            string
	Summary        string
	Location       string
	Description    string
	Classification string
	Transparency   string
	Status         string
	StartDate      time.Time
	EndDate        time.Time
	AllDay         bool
	Created        time.Time
	LastModified   time.Time
	CreatedBy      int64
	ModifiedBy     int64
	CalendarUser   int64
	Organizer      string
	Sequence       int64
	URL            string
	Color          string
	RRule          string
	Timestamp      time.Time
}

// Attendee is a participant of an event. Entity, Folder and Hidden only
// exist for internal attendees.
type Attendee struct {
	ID       int64
	EventID  int64
	Entity   int64
	Folder   int64
	Hidden   bool
	URI      string
	CN       string
	Email    string
	CUType   string
	Role     string
	PartStat string
	RSVP     bool
	Comment  string
}

// Alarm is a reminder attached to an event for one user.
type Alarm struct {
	ID           int64
	EventID      int64
	UID          string
	User         int64
	Action       string
	Trigger      string
	Acknowledged time.Time
	Summary      string
}

// Conference is a conferencing link attached to an event.
type Conference struct {
	ID       int64
	EventID  int64
	URI      string
	Label    string
	Features string
}
