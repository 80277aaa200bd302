package confirm_party_size

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	confirmPartySize "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_party_size"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNoPendingBooking   = "нет бронирования, ожидающего количества гостей"
	msgInvalidPartySize   = "количество гостей должно быть от 1 до 100"
)

type Handler struct {
	useCase ConfirmPartySizeUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPartySizeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/party-size
// 200 при подтверждении, 409 со списком свободных слотов при переполнении
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/party-size - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/party-size - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ConfirmPartySizeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/party-size - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, confirmPartySize.ErrInvalidPartySize), errors.Is(err, confirmPartySize.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%d/party-size - Invalid party size: %d", bookingID, req.PartySize)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		case errors.Is(err, confirmPartySize.ErrNoPendingBooking):
			h.logger.Warn("PATCH /bookings/%d/party-size - No pending booking: user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNoPendingBooking)

		case errors.Is(err, confirmPartySize.ErrStoreUnavailable):
			h.logger.Error("PATCH /bookings/%d/party-size - Store unavailable: %v", bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /bookings/%d/party-size - Failed to confirm: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Outcome == confirmPartySize.OutcomeCapacityExceeded {
		h.logger.Info("PATCH /bookings/%d/party-size - Slot is full: user_id=%d, time=%s, alternatives=%d",
			bookingID, userID, result.Time, len(result.AlternativeSlots))
		handlers.RespondJSON(w, http.StatusConflict, FromUseCaseResponse(result))
		return
	}

	h.logger.Info("PATCH /bookings/%d/party-size - Booking confirmed: user_id=%d, party_size=%d",
		bookingID, userID, result.PartySize)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
