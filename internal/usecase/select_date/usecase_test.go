package select_date

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var tashkent = time.FixedZone("UZT", 5*60*60)

func newUseCase(ledger *usecasetest.Ledger, now time.Time) (*UseCase, *usecasetest.TxManager) {
	tx := &usecasetest.TxManager{}
	slots := get_available_slots.NewUseCase(ledger, ledger.Categories(), domain.DefaultSlotGrid(), usecasetest.NopLogger{})
	uc := NewUseCase(ledger, ledger.Categories(), slots, tx, tashkent, usecasetest.NopLogger{})
	uc.timeProvider = usecasetest.Clock{At: now}
	return uc, tx
}

func TestSelectDateCreatesAwaitingTimeBooking(t *testing.T) {
	ledger := usecasetest.NewLedger()
	uc, tx := newUseCase(ledger, time.Date(2026, 11, 1, 10, 0, 0, 0, tashkent))
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Calls)
	assert.Equal(t, string(domain.StatusAwaitingTime), resp.Status)
	assert.Len(t, resp.AvailableSlots, 13)

	booking, ok := ledger.Booking(resp.BookingID)
	require.True(t, ok)
	assert.Equal(t, int64(42), booking.UserID)
	assert.Nil(t, booking.StartTime)
	assert.Nil(t, booking.PartySize)
}

func TestSelectDateAbandonsPreviousPendingBooking(t *testing.T) {
	ledger := usecasetest.NewLedger()
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	completeID := ledger.Put(domain.Booking{
		CategoryID:  1,
		UserID:      42,
		BookingDate: date,
		StartTime:   ptr.Ptr(types.TimeString("11:00")),
		PartySize:   ptr.Ptr(2),
		Status:      domain.StatusComplete,
	})
	pendingID := ledger.Put(domain.Booking{
		CategoryID:  2,
		UserID:      42,
		BookingDate: date,
		StartTime:   ptr.Ptr(types.TimeString("12:00")),
		Status:      domain.StatusAwaitingPartySize,
	})
	otherUserID := ledger.Put(domain.Booking{CategoryID: 2, UserID: 7, BookingDate: date, Status: domain.StatusAwaitingTime})

	uc, _ := newUseCase(ledger, time.Date(2026, 11, 1, 10, 0, 0, 0, tashkent))
	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 2, Date: date})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Abandoned)

	_, ok := ledger.Booking(pendingID)
	assert.False(t, ok)
	_, ok = ledger.Booking(completeID)
	assert.True(t, ok)
	_, ok = ledger.Booking(otherUserID)
	assert.True(t, ok)

	// 12:00 освободился вместе с удаленным бронированием
	assert.Contains(t, resp.AvailableSlots, types.TimeString("12:00"))
}

func TestSelectDateRejectsPastDateInConfiguredLocation(t *testing.T) {
	ledger := usecasetest.NewLedger()
	// 20:00 UTC 1 ноября это уже 2 ноября в Ташкенте
	uc, _ := newUseCase(ledger, time.Date(2026, 11, 1, 20, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 1, Date: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 1, Date: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)})
	assert.NoError(t, err)
	assert.Equal(t, 1, ledger.Len())
}

func TestSelectDateErrors(t *testing.T) {
	ledger := usecasetest.NewLedger()
	uc, _ := newUseCase(ledger, time.Date(2026, 11, 1, 10, 0, 0, 0, tashkent))
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 77, Date: date})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = uc.Execute(context.Background(), &Request{CategoryID: 1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ledger.Fail("Create", errors.New("db down"))
	_, err = uc.Execute(context.Background(), &Request{UserID: 42, CategoryID: 1, Date: date})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 0, ledger.Len())
}
