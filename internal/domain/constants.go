package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default slot grid, shared by every category and date
const (
	DefaultSlotsOpen       = "09:00"
	DefaultSlotsClose      = "21:00"
	DefaultIntervalMinutes = 60
)

// DefaultCapacity capacity of a category missing from the capacity table
const DefaultCapacity = 5

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 100
)

// categoryCapacity capacity ceiling per category id
var categoryCapacity = map[int64]int{
	1: 5,
	2: 10,
	3: 20,
	4: 10,
}

// PendingStatuses statuses of a booking that is still being built
var PendingStatuses = []BookingStatus{
	StatusAwaitingTime,
	StatusAwaitingPartySize,
}
