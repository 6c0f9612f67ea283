package get_revenue_report

import (
	"fmt"
	"time"
)

// validateRange проверяет границы периода, уже приведенные к началу дня
func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}
	if from.After(to) {
		return fmt.Errorf("%w: from date is after to date", ErrInvalidInput)
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, MaxRangeDays)
	}
	return nil
}
