package set_phone

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAccessDenied       = "можно изменить только свой профиль"
	msgPhoneRequired      = "номер телефона обязателен"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/users/{userId}/phone
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /users/{id}/phone - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("PUT /users/{id}/phone - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if userID != currentUserID {
		h.logger.Warn("PUT /users/%d/phone - Access denied: current_user_id=%d", userID, currentUserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req SetPhoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/%d/phone - Invalid request body: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.SetPhone(r.Context(), userID, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /users/%d/phone - Empty phone", userID)
			handlers.RespondBadRequest(w, msgPhoneRequired)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /users/%d/phone - User not found", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("PUT /users/%d/phone - Store unavailable: %v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /users/%d/phone - Failed to set phone: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /users/%d/phone - Phone saved", userID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
