package select_time

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда бронирование не найдено, чужое или уже завершено
	ErrNoPendingBooking = errors.New("select_time: no pending booking")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("select_time: invalid time slot")

	// ErrSlotInPast возвращается, когда выбранный слот на дату бронирования уже начался
	ErrSlotInPast = errors.New("select_time: slot already started")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_time: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("select_time: store unavailable")
)
