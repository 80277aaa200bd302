package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgAccessDenied  = "доступ к бронированиям другого пользователя запрещен"
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

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if userID != currentUserID {
		h.logger.Warn("GET /users/%d/bookings - Access denied: current_user_id=%d", userID, currentUserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrStoreUnavailable) {
			h.logger.Error("GET /users/%d/bookings - Store unavailable: %v", userID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /users/%d/bookings - Failed to get bookings: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/%d/bookings - Bookings retrieved: count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
