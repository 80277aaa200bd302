package domain

import "time"

// Language preferred language of a user
type Language string

const (
	LanguageEn Language = "en"
	LanguageRu Language = "ru"
	LanguageUz Language = "uz"
)

// DefaultLanguage used when a user has not chosen one
const DefaultLanguage = LanguageEn

// IsValid returns true for a supported language
func (l Language) IsValid() bool {
	switch l {
	case LanguageEn, LanguageRu, LanguageUz:
		return true
	}
	return false
}

// OrDefault returns the language or DefaultLanguage if it is not set or unsupported
func (l Language) OrDefault() Language {
	if l.IsValid() {
		return l
	}
	return DefaultLanguage
}

// User represents a chat user
type User struct {
	ChatID   int64
	FullName string
	Phone    *string
	Language Language // empty until chosen

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPhone returns true once the user has shared a contact
func (u *User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}
