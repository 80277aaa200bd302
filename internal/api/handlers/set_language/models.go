package set_language

// SetLanguageRequest HTTP request model
type SetLanguageRequest struct {
	Language string `json:"language"` // en, ru, uz
}
