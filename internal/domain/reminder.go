package domain

import "time"

// Default reminder cadence
const (
	DefaultReminderPeriod = time.Hour
	DefaultReminderLead   = 24 * time.Hour
	DefaultReminderWindow = time.Hour
)

// ReminderWindow closed time range of visits that are due for a reminder
type ReminderWindow struct {
	Start time.Time
	End   time.Time
}

// NewReminderWindow returns [now+lead, now+lead+width]
func NewReminderWindow(now time.Time, lead, width time.Duration) ReminderWindow {
	start := now.Add(lead)
	return ReminderWindow{Start: start, End: start.Add(width)}
}

// Contains returns true if t is inside the window, bounds included
func (w ReminderWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Reminder data passed to the notifier
type Reminder struct {
	BookingID    int64
	CategoryName string
	Date         time.Time
	Time         string
	PartySize    int
	Language     Language
}
