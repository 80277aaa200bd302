package select_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	selectTime "github.com/m04kA/SMC-ReservationService/internal/usecase/select_time"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNoPendingBooking   = "нет незавершенного бронирования, ожидающего выбора времени"
	msgInvalidTimeSlot    = "время не входит в сетку слотов"
	msgSlotInPast         = "выбранное время уже прошло"
)

type Handler struct {
	useCase SelectTimeUseCase
	logger  Logger
}

func NewHandler(useCase SelectTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/time - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/time - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SelectTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/time - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, selectTime.ErrNoPendingBooking):
			h.logger.Warn("PATCH /bookings/%d/time - No pending booking: user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNoPendingBooking)

		case errors.Is(err, selectTime.ErrSlotInPast):
			h.logger.Warn("PATCH /bookings/%d/time - Slot already started: time=%s", bookingID, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, selectTime.ErrInvalidTimeSlot), errors.Is(err, selectTime.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/time - Invalid time slot: time=%s", bookingID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, selectTime.ErrStoreUnavailable):
			h.logger.Error("PATCH /bookings/%d/time - Store unavailable: %v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /bookings/%d/time - Failed to select time: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/time - Time selected: user_id=%d, time=%s", bookingID, userID, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
