package get_pending_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgAccessDenied     = "доступ к бронированиям другого пользователя запрещен"
	msgNoPendingBooking = "нет незавершенного бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings/pending
// Возвращает последнее незавершенное бронирование пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings/pending - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings/pending - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if userID != currentUserID {
		h.logger.Warn("GET /users/%d/bookings/pending - Access denied: current_user_id=%d", userID, currentUserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	booking, err := h.service.GetPending(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNoPendingBooking):
			h.logger.Info("GET /users/%d/bookings/pending - No pending booking", userID)
			handlers.RespondNotFound(w, msgNoPendingBooking)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /users/%d/bookings/pending - Store unavailable: %v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /users/%d/bookings/pending - Failed to get pending booking: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/%d/bookings/pending - Pending booking retrieved: booking_id=%d, status=%s",
		userID, booking.ID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
