package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSender struct {
	params []*bot.SendMessageParams
	err    error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = append(f.params, params)
	return &models.Message{ID: len(f.params)}, nil
}

func withFakeBot(t *testing.T, sender *fakeSender) {
	t.Helper()

	original := createBot
	createBot = func(token string, _ ...bot.Option) (messageSender, error) {
		if token == "broken" {
			return nil, errors.New("bad token")
		}
		return sender, nil
	}
	t.Cleanup(func() { createBot = original })
}

var reminder = domain.Reminder{
	BookingID:    7,
	CategoryName: "Отели и гостиницы",
	Date:         time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
	Time:         "10:00",
	PartySize:    2,
	Language:     domain.LanguageRu,
}

func TestNewClientValidatesToken(t *testing.T) {
	withFakeBot(t, &fakeSender{})

	_, err := NewClient("  ", nopLogger{})
	assert.ErrorIs(t, err, ErrTokenRequired)

	_, err = NewClient("broken", nopLogger{})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSendReminder(t *testing.T) {
	sender := &fakeSender{}
	withFakeBot(t, sender)

	client, err := NewClient("123:abc", nopLogger{})
	require.NoError(t, err)

	require.NoError(t, client.SendReminder(context.Background(), 42, reminder))
	require.Len(t, sender.params, 1)
	assert.Equal(t, int64(42), sender.params[0].ChatID)
	assert.Equal(t, "Напоминание: Отели и гостиницы - 2026-11-02 10:00", sender.params[0].Text)
}

func TestSendReminderErrors(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("%w, Forbidden: bot was blocked by the user", bot.ErrorForbidden)}
	withFakeBot(t, sender)

	client, err := NewClient("123:abc", nopLogger{})
	require.NoError(t, err)

	err = client.SendReminder(context.Background(), 42, reminder)
	assert.ErrorIs(t, err, ErrChatUnavailable)

	sender.err = errors.New("connection reset")
	err = client.SendReminder(context.Background(), 42, reminder)
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestFormatReminderLanguages(t *testing.T) {
	r := reminder
	r.CategoryName = "Hotels"

	r.Language = domain.LanguageEn
	assert.Equal(t, "Reminder: Hotels - 2026-11-02 10:00", FormatReminder(r))

	r.Language = domain.LanguageUz
	assert.Equal(t, "Eslatma: Hotels - 2026-11-02 10:00", FormatReminder(r))

	r.Language = ""
	assert.Equal(t, "Reminder: Hotels - 2026-11-02 10:00", FormatReminder(r))
}
