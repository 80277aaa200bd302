package list_categories

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
)

// CategoriesResponse HTTP response model
type CategoriesResponse struct {
	Categories []models.CategoryResponse `json:"categories"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/categories
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrStoreUnavailable) {
			h.logger.Error("GET /categories - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /categories - Failed to list categories: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /categories - Categories retrieved: count=%d", len(categories))
	handlers.RespondJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
