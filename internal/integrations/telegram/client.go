// Package telegram отправляет уведомления пользователям через Telegram Bot API
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// createBot создает клиента Bot API без запроса getMe при старте
var createBot = func(token string, options ...bot.Option) (messageSender, error) {
	return bot.New(token, append(options, bot.WithSkipGetMe())...)
}

// Client клиент для отправки сообщений
type Client struct {
	sender messageSender
	log    Logger
}

// NewClient создает новый экземпляр клиента Telegram
func NewClient(token string, log Logger) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenRequired
	}

	sender, err := createBot(token)
	if err != nil {
		return nil, fmt.Errorf("%w: init bot client: %v", ErrSendFailed, err)
	}

	return &Client{sender: sender, log: log}, nil
}

// SendReminder отправляет напоминание о бронировании
func (c *Client) SendReminder(ctx context.Context, chatID int64, reminder domain.Reminder) error {
	text := FormatReminder(reminder)

	msg, err := c.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		if errors.Is(err, bot.ErrorForbidden) || errors.Is(err, bot.ErrorNotFound) {
			c.log.Warn("Telegram: chat_id=%d unavailable: %v", chatID, err)
			return fmt.Errorf("%w: chat_id=%d: %v", ErrChatUnavailable, chatID, err)
		}
		return fmt.Errorf("%w: chat_id=%d: %v", ErrSendFailed, chatID, err)
	}

	c.log.Info("Telegram: reminder for booking id=%d sent to chat_id=%d, message_id=%d",
		reminder.BookingID, chatID, msg.ID)
	return nil
}
