package send_reminders

import "errors"

var (
	// ErrStoreUnavailable возвращается, когда не удалось получить бронирования для напоминаний
	ErrStoreUnavailable = errors.New("send_reminders: store unavailable")
)
