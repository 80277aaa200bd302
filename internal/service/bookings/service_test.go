package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var visitDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func completeBooking(userID int64) domain.Booking {
	return domain.Booking{
		CategoryID:  3,
		UserID:      userID,
		BookingDate: visitDate,
		StartTime:   ptr.Ptr(types.TimeString("12:00")),
		PartySize:   ptr.Ptr(4),
		Status:      domain.StatusComplete,
	}
}

func TestGetByIDReturnsSnapshotWithCategory(t *testing.T) {
	ledger := usecasetest.NewLedger()
	id := ledger.Put(completeBooking(42))
	svc := NewService(ledger, usecasetest.NopLogger{})

	resp, err := svc.GetByID(context.Background(), id, 42)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "2026-11-02", resp.BookingDate)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "12:00", *resp.StartTime)
	assert.Equal(t, "Restaurants", resp.Category.Name)
	assert.Equal(t, 20, resp.Category.Capacity)
	assert.Equal(t, string(domain.StatusComplete), resp.Status)
}

func TestGetByIDErrors(t *testing.T) {
	ledger := usecasetest.NewLedger()
	id := ledger.Put(completeBooking(42))
	svc := NewService(ledger, usecasetest.NopLogger{})

	_, err := svc.GetByID(context.Background(), id+1, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), id, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	ledger.Fail("GetDetailsByID", errors.New("connection refused"))
	_, err = svc.GetByID(context.Background(), id, 42)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetUserBookingsNewestFirst(t *testing.T) {
	ledger := usecasetest.NewLedger()
	first := ledger.Put(completeBooking(42))
	second := ledger.Put(completeBooking(42))
	ledger.Put(completeBooking(7))
	svc := NewService(ledger, usecasetest.NopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, second, resp.Bookings[0].ID)
	assert.Equal(t, first, resp.Bookings[1].ID)

	empty, err := svc.GetUserBookings(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Bookings)
}

func TestGetPending(t *testing.T) {
	ledger := usecasetest.NewLedger()
	ledger.Put(completeBooking(42))
	svc := NewService(ledger, usecasetest.NopLogger{})

	_, err := svc.GetPending(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoPendingBooking)

	pendingID := ledger.Put(domain.Booking{
		CategoryID:  1,
		UserID:      42,
		BookingDate: visitDate,
		Status:      domain.StatusAwaitingTime,
	})

	resp, err := svc.GetPending(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, pendingID, resp.ID)
	assert.Nil(t, resp.StartTime)
	assert.Nil(t, resp.PartySize)
}

func TestCancel(t *testing.T) {
	ledger := usecasetest.NewLedger()
	id := ledger.Put(completeBooking(42))
	svc := NewService(ledger, usecasetest.NopLogger{})

	assert.ErrorIs(t, svc.Cancel(context.Background(), id, 7), ErrAccessDenied)
	_, exists := ledger.Booking(id)
	assert.True(t, exists)

	require.NoError(t, svc.Cancel(context.Background(), id, 42))
	_, exists = ledger.Booking(id)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Cancel(context.Background(), id, 42), ErrBookingNotFound)

	_, err := svc.GetByID(context.Background(), id, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
