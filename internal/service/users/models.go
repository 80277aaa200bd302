package users

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UserResponse данные пользователя
type UserResponse struct {
	ChatID    int64     `json:"chatId"`
	FullName  string    `json:"fullName"`
	Phone     *string   `json:"phone,omitempty"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ChatID:    user.ChatID,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Language:  string(user.Language),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
