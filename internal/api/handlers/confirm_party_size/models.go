package confirm_party_size

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	confirmPartySize "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_party_size"
)

// ConfirmPartySizeRequest HTTP request model
type ConfirmPartySizeRequest struct {
	PartySize int `json:"partySize"`
}

// ConfirmPartySizeResponse HTTP response model
type ConfirmPartySizeResponse struct {
	Outcome          string   `json:"outcome"`
	ID               int64    `json:"id"`
	CategoryID       int64    `json:"categoryId"`
	BookingDate      string   `json:"bookingDate"`
	StartTime        string   `json:"startTime"`
	PartySize        int      `json:"partySize"`
	Capacity         int      `json:"capacity"`
	Admitted         int      `json:"admitted"`
	AlternativeSlots []string `json:"alternativeSlots,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *ConfirmPartySizeRequest) ToUseCaseRequest(userID, bookingID int64) *confirmPartySize.Request {
	return &confirmPartySize.Request{
		UserID:    userID,
		BookingID: bookingID,
		PartySize: r.PartySize,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPartySize.Response) *ConfirmPartySizeResponse {
	var alternatives []string
	if resp.Outcome == confirmPartySize.OutcomeCapacityExceeded {
		alternatives = make([]string, len(resp.AlternativeSlots))
		for i, slot := range resp.AlternativeSlots {
			alternatives[i] = slot.String()
		}
	}

	return &ConfirmPartySizeResponse{
		Outcome:          string(resp.Outcome),
		ID:               resp.BookingID,
		CategoryID:       resp.CategoryID,
		BookingDate:      resp.Date.Format(domain.DateFormat),
		StartTime:        resp.Time.String(),
		PartySize:        resp.PartySize,
		Capacity:         resp.Capacity,
		Admitted:         resp.Admitted,
		AlternativeSlots: alternatives,
	}
}
