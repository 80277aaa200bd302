package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	selectDate "github.com/m04kA/SMC-ReservationService/internal/usecase/select_date"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CategoryID  int64  `json:"categoryId"`
	BookingDate string `json:"bookingDate"` // "2026-11-02"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64    `json:"id"`
	CategoryID     int64    `json:"categoryId"`
	BookingDate    string   `json:"bookingDate"`
	Status         string   `json:"status"`
	AvailableSlots []string `json:"availableSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*selectDate.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &selectDate.Request{
		UserID:     userID,
		CategoryID: r.CategoryID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectDate.Response) *BookingResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return &BookingResponse{
		ID:             resp.BookingID,
		CategoryID:     resp.CategoryID,
		BookingDate:    resp.Date.Format(domain.DateFormat),
		Status:         resp.Status,
		AvailableSlots: slots,
	}
}
