package confirm_party_size

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда бронирование не найдено, чужое или не ждет количества гостей
	ErrNoPendingBooking = errors.New("confirm_party_size: no pending booking")

	// ErrInvalidPartySize возвращается, когда количество гостей вне допустимого диапазона
	ErrInvalidPartySize = errors.New("confirm_party_size: invalid party size")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_party_size: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("confirm_party_size: store unavailable")
)
