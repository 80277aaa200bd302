package set_phone

// SetPhoneRequest HTTP request model
type SetPhoneRequest struct {
	Phone string `json:"phone"`
}
