package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCategoryID = "некорректный ID категории"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCategoryNotFound  = "категория не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/categories/{categoryId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathInt64(r, "categoryId")
	if err != nil {
		h.logger.Warn("GET /categories/{id}/available-slots - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /categories/%d/available-slots - Missing date", categoryID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// ID пользователя необязателен, нужен только для логов
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(userID, categoryID, dateStr)
	if err != nil {
		h.logger.Warn("GET /categories/%d/available-slots - Invalid date format: %v", categoryID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCategoryNotFound):
			h.logger.Warn("GET /categories/%d/available-slots - Category not found", categoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /categories/%d/available-slots - Invalid input: %v", categoryID, err)
			handlers.RespondBadRequest(w, msgInvalidCategoryID)

		case errors.Is(err, getAvailableSlots.ErrStoreUnavailable):
			h.logger.Error("GET /categories/%d/available-slots - Store unavailable: %v", categoryID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /categories/%d/available-slots - Failed to get slots: %v", categoryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /categories/%d/available-slots - Slots retrieved: date=%s, slots_count=%d",
		categoryID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
