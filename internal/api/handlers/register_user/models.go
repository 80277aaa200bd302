package register_user

// RegisterUserRequest HTTP request model
type RegisterUserRequest struct {
	ChatID   int64  `json:"chatId"`
	FullName string `json:"fullName"`
	Language string `json:"language,omitempty"` // en, ru, uz
}
