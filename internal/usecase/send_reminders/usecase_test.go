package send_reminders

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

var tashkent = time.FixedZone("UZT", 5*60*60)

type sentReminder struct {
	chatID   int64
	reminder domain.Reminder
}

type fakeNotifier struct {
	sent    []sentReminder
	failFor map[int64]bool
}

func (f *fakeNotifier) SendReminder(_ context.Context, chatID int64, reminder domain.Reminder) error {
	if f.failFor[chatID] {
		return errors.New("telegram: chat not found")
	}
	f.sent = append(f.sent, sentReminder{chatID: chatID, reminder: reminder})
	return nil
}

type fakeLanguages map[int64]domain.Language

func (f fakeLanguages) Language(_ context.Context, chatID int64) (domain.Language, error) {
	if lang, ok := f[chatID]; ok {
		return lang, nil
	}
	return domain.DefaultLanguage, nil
}

type reminderCounter map[string]int

func (c reminderCounter) ObserveReminder(result string) { c[result]++ }

// visitAt кладет завершенное бронирование на now+offset
func visitAt(ledger *usecasetest.Ledger, now time.Time, offset time.Duration, userID int64) int64 {
	at := now.Add(offset)
	return ledger.Put(domain.Booking{
		CategoryID:  3,
		UserID:      userID,
		BookingDate: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:   ptr.Ptr(types.NewTimeString(at)),
		PartySize:   ptr.Ptr(4),
		Status:      domain.StatusComplete,
	})
}

func newUseCase(ledger *usecasetest.Ledger, notifier Notifier, languages LanguageResolver, metrics Metrics, now time.Time) *UseCase {
	uc := NewUseCase(ledger, languages, notifier, metrics, Config{
		Lead:     24 * time.Hour,
		Window:   time.Hour,
		Location: tashkent,
	}, usecasetest.NopLogger{})
	uc.timeProvider = usecasetest.Clock{At: now}
	return uc
}

func TestRemindersWithinWindowOnly(t *testing.T) {
	ledger := usecasetest.NewLedger()
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, tashkent)

	inside := visitAt(ledger, now, 24*time.Hour+30*time.Minute, 42)
	lower := visitAt(ledger, now, 24*time.Hour, 43)
	upper := visitAt(ledger, now, 25*time.Hour, 44)
	tooLate := visitAt(ledger, now, 26*time.Hour, 45)
	tooEarly := visitAt(ledger, now, 23*time.Hour, 46)
	pending := ledger.Put(domain.Booking{
		CategoryID:  3,
		UserID:      47,
		BookingDate: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   ptr.Ptr(types.TimeString("09:30")),
		Status:      domain.StatusAwaitingPartySize,
	})

	notifier := &fakeNotifier{}
	metrics := reminderCounter{}
	uc := newUseCase(ledger, notifier, fakeLanguages{42: domain.LanguageRu}, metrics, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Due)
	assert.Equal(t, 3, resp.Sent)
	assert.Equal(t, 3, metrics[ResultSent])

	for _, id := range []int64{inside, lower, upper} {
		b, _ := ledger.Booking(id)
		assert.True(t, b.ReminderSent, id)
	}
	for _, id := range []int64{tooLate, tooEarly, pending} {
		b, _ := ledger.Booking(id)
		assert.False(t, b.ReminderSent, id)
	}

	require.Len(t, notifier.sent, 3)
	first := notifier.sent[0]
	assert.Equal(t, int64(42), first.chatID)
	assert.Equal(t, domain.LanguageRu, first.reminder.Language)
	assert.Equal(t, "Столик в ресторане", first.reminder.CategoryName)
	assert.Equal(t, "09:30", first.reminder.Time)
	assert.Equal(t, 4, first.reminder.PartySize)
	assert.Equal(t, "Restaurants", notifier.sent[1].reminder.CategoryName)

	// Второй цикл ничего не отправляет повторно
	resp, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Due)
	assert.Len(t, notifier.sent, 3)
}

func TestFailedSendIsRetriedNextCycle(t *testing.T) {
	ledger := usecasetest.NewLedger()
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, tashkent)
	id := visitAt(ledger, now, 24*time.Hour+30*time.Minute, 42)

	notifier := &fakeNotifier{failFor: map[int64]bool{42: true}}
	metrics := reminderCounter{}
	uc := newUseCase(ledger, notifier, fakeLanguages{}, metrics, now)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 1, metrics[ResultSendFailed])
	b, _ := ledger.Booking(id)
	assert.False(t, b.ReminderSent)

	notifier.failFor = nil
	uc.timeProvider = usecasetest.Clock{At: now.Add(10 * time.Minute)}
	resp, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Sent)
	b, _ = ledger.Booking(id)
	assert.True(t, b.ReminderSent)
}

func TestMarkFailureIsCounted(t *testing.T) {
	ledger := usecasetest.NewLedger()
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, tashkent)
	visitAt(ledger, now, 24*time.Hour+30*time.Minute, 42)
	ledger.Fail("MarkReminderSent", errors.New("db down"))

	metrics := reminderCounter{}
	resp, err := newUseCase(ledger, &fakeNotifier{}, fakeLanguages{}, metrics, now).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 1, metrics[ResultMarkFailed])
}

func TestScanFailure(t *testing.T) {
	ledger := usecasetest.NewLedger()
	ledger.Fail("GetDueReminders", errors.New("db down"))

	_, err := newUseCase(ledger, &fakeNotifier{}, fakeLanguages{}, nil, time.Now()).Execute(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
