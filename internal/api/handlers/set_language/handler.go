package set_language

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
	msgInvalidLanguage    = "поддерживаются языки en, ru, uz"
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

// Handle PUT /api/v1/users/{userId}/language
// Пользователь создается, если его еще нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /users/{id}/language - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("PUT /users/{id}/language - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if userID != currentUserID {
		h.logger.Warn("PUT /users/%d/language - Access denied: current_user_id=%d", userID, currentUserID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req SetLanguageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/%d/language - Invalid request body: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.SetLanguage(r.Context(), userID, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidLanguage):
			h.logger.Warn("PUT /users/%d/language - Invalid language: %q", userID, req.Language)
			handlers.RespondBadRequest(w, msgInvalidLanguage)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("PUT /users/%d/language - Store unavailable: %v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /users/%d/language - Failed to set language: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /users/%d/language - Language saved: %s", userID, user.Language)
	handlers.RespondJSON(w, http.StatusOK, user)
}
