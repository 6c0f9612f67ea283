package get_available_spots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LotID == "" {
		return fmt.Errorf("%w: lotId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime == "" || req.EndTime == "" {
		return fmt.Errorf("%w: start and end times are required", ErrInvalidInput)
	}
	return nil
}
