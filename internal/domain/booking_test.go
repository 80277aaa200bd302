package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestBookingLifecycle(t *testing.T) {
	b := &Booking{ID: 1, CategoryID: 1, UserID: 42, Status: StatusAwaitingTime}

	assert.True(t, b.IsPending())
	assert.True(t, b.CanSelectTime())
	assert.False(t, b.CanConfirmPartySize())
	_, ok := b.Slot()
	assert.False(t, ok)

	b.StartTime = ptr.Ptr(types.TimeString("10:00"))
	b.Status = StatusAwaitingPartySize
	assert.True(t, b.CanSelectTime())
	assert.True(t, b.CanConfirmPartySize())

	b.PartySize = ptr.Ptr(3)
	b.Status = StatusComplete
	assert.False(t, b.IsPending())
	assert.True(t, b.IsComplete())
	assert.False(t, b.CanSelectTime())
	assert.True(t, b.IsOwnedBy(42))
	assert.False(t, b.IsOwnedBy(7))
}

func TestSlotKey(t *testing.T) {
	b := &Booking{
		CategoryID:  3,
		BookingDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   ptr.Ptr(types.TimeString("10:00")),
	}

	key, ok := b.Slot()
	require.True(t, ok)
	assert.Equal(t, "3|2024-06-01|10:00", key.String())
}

func TestStartsAt(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   ptr.Ptr(types.TimeString("18:00")),
	}

	at, ok := b.StartsAt(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC), at)
}

func TestBookingStatusIsValid(t *testing.T) {
	assert.True(t, StatusComplete.IsValid())
	assert.False(t, BookingStatus("cancelled").IsValid())
}

func TestReminderWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	w := NewReminderWindow(now, DefaultReminderLead, DefaultReminderWindow)

	assert.True(t, w.Contains(now.Add(24*time.Hour)))
	assert.True(t, w.Contains(now.Add(24*time.Hour+30*time.Minute)))
	assert.True(t, w.Contains(now.Add(25*time.Hour)))
	assert.False(t, w.Contains(now.Add(26*time.Hour)))
	assert.False(t, w.Contains(now.Add(23*time.Hour)))
}

func TestLanguage(t *testing.T) {
	assert.True(t, LanguageUz.IsValid())
	assert.False(t, Language("de").IsValid())
	assert.Equal(t, LanguageEn, Language("").OrDefault())
	assert.Equal(t, LanguageRu, LanguageRu.OrDefault())
}
