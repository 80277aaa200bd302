package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CategoryResponse категория бронирования
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NameRu   string `json:"nameRu"`
	NameUz   string `json:"nameUz"`
	Capacity int    `json:"capacity"`
}

// BookingResponse снимок бронирования
type BookingResponse struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	Category     CategoryResponse `json:"category"`
	BookingDate  string           `json:"bookingDate"`
	StartTime    *string          `json:"startTime,omitempty"`
	PartySize    *int             `json:"partySize,omitempty"`
	Status       string           `json:"status"`
	ReminderSent bool             `json:"reminderSent"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainCategory конвертирует категорию
func FromDomainCategory(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		NameRu:   category.NameRu,
		NameUz:   category.NameUz,
		Capacity: category.Capacity(),
	}
}

// FromDomainBooking конвертирует domain.BookingDetails в BookingResponse
func FromDomainBooking(details *domain.BookingDetails) *BookingResponse {
	if details == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           details.ID,
		UserID:       details.UserID,
		Category:     FromDomainCategory(details.Category),
		BookingDate:  details.BookingDate.Format(domain.DateFormat),
		PartySize:    details.PartySize,
		Status:       string(details.Status),
		ReminderSent: details.ReminderSent,
		CreatedAt:    details.CreatedAt,
		UpdatedAt:    details.UpdatedAt,
	}

	if details.StartTime != nil {
		startTime := details.StartTime.String()
		resp.StartTime = &startTime
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(list []*domain.BookingDetails) *BookingListResponse {
	bookings := make([]BookingResponse, 0, len(list))
	for _, details := range list {
		bookings = append(bookings, *FromDomainBooking(details))
	}

	return &BookingListResponse{
		Bookings: bookings,
		Total:    len(bookings),
	}
}
