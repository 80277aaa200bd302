package select_time

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	selectTime "github.com/m04kA/SMC-ReservationService/internal/usecase/select_time"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SelectTimeRequest HTTP request model
type SelectTimeRequest struct {
	StartTime string `json:"startTime"` // "10:00"
}

// SelectTimeResponse HTTP response model
type SelectTimeResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"categoryId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	Capacity    int    `json:"capacity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *SelectTimeRequest) ToUseCaseRequest(userID, bookingID int64) *selectTime.Request {
	return &selectTime.Request{
		UserID:    userID,
		BookingID: bookingID,
		Time:      types.TimeString(r.StartTime),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectTime.Response) *SelectTimeResponse {
	return &SelectTimeResponse{
		ID:          resp.BookingID,
		CategoryID:  resp.CategoryID,
		BookingDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.Time.String(),
		Status:      resp.Status,
		Capacity:    resp.Capacity,
	}
}
