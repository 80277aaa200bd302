package select_time

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, grid domain.SlotGrid) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if !grid.Contains(req.Time) {
		return fmt.Errorf("%w: %s is not a slot between %s and %s", ErrInvalidTimeSlot, req.Time, grid.Open, grid.Close)
	}

	return nil
}
