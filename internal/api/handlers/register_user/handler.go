package register_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "chatId обязателен"
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

// Handle POST /api/v1/users
// 201 для нового пользователя, 200 если пользователь уже был
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, created, err := h.service.Register(r.Context(), req.ChatID, req.FullName, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, users.ErrInvalidLanguage):
			h.logger.Warn("POST /users - Invalid language: chat_id=%d, language=%q", req.ChatID, req.Language)
			handlers.RespondBadRequest(w, msgInvalidLanguage)

		case errors.Is(err, users.ErrStoreUnavailable):
			h.logger.Error("POST /users - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /users - Failed to register user: chat_id=%d, error=%v", req.ChatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /users - User registered: chat_id=%d, created=%t", user.ChatID, created)
	handlers.RespondJSON(w, status, user)
}
