package telegram

import "errors"

var (
	// ErrTokenRequired возвращается, когда токен бота не задан
	ErrTokenRequired = errors.New("telegram client: token is required")

	// ErrChatUnavailable возвращается, когда пользователь заблокировал бота или чат не найден
	ErrChatUnavailable = errors.New("telegram client: chat unavailable")

	// ErrSendFailed возвращается при остальных ошибках отправки
	ErrSendFailed = errors.New("telegram client: failed to send message")
)
