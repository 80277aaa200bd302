package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingStatus represents the lifecycle step of a booking
type BookingStatus string

const (
	StatusAwaitingTime      BookingStatus = "awaiting_time"
	StatusAwaitingPartySize BookingStatus = "awaiting_party_size"
	StatusComplete          BookingStatus = "complete"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusAwaitingTime, StatusAwaitingPartySize, StatusComplete:
		return true
	}
	return false
}

// Booking represents a reservation in the ledger.
// StartTime is nil while awaiting time, PartySize is nil until the booking is complete.
type Booking struct {
	ID           int64
	CategoryID   int64
	UserID       int64 // chat id of the owner
	BookingDate  time.Time
	StartTime    *types.TimeString
	PartySize    *int
	Status       BookingStatus
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the booking is not complete
func (b *Booking) IsPending() bool {
	return b.Status != StatusComplete
}

// IsComplete returns true once party size has been admitted
func (b *Booking) IsComplete() bool {
	return b.Status == StatusComplete
}

// CanSelectTime returns true if a time may be written (first choice or retry after rejection)
func (b *Booking) CanSelectTime() bool {
	return b.Status == StatusAwaitingTime || b.Status == StatusAwaitingPartySize
}

// CanConfirmPartySize returns true if the booking waits for party size
func (b *Booking) CanConfirmPartySize() bool {
	return b.Status == StatusAwaitingPartySize && b.StartTime != nil
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// Slot returns the slot key of the booking, ok is false while time is not chosen
func (b *Booking) Slot() (SlotKey, bool) {
	if b.StartTime == nil {
		return SlotKey{}, false
	}
	return SlotKey{CategoryID: b.CategoryID, Date: b.BookingDate, Time: *b.StartTime}, true
}

// StartsAt returns the visit moment in the given location
func (b *Booking) StartsAt(loc *time.Location) (time.Time, bool) {
	if b.StartTime == nil {
		return time.Time{}, false
	}
	t, err := b.StartTime.OnDate(b.BookingDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BookingDetails booking joined with its category names
type BookingDetails struct {
	Booking
	Category Category
}

// SlotKey identifies one capacity-bounded slot
type SlotKey struct {
	CategoryID int64
	Date       time.Time
	Time       types.TimeString
}

// String returns a stable key, used for locks
func (k SlotKey) String() string {
	return fmt.Sprintf("%d|%s|%s", k.CategoryID, k.Date.Format(DateFormat), k.Time)
}
