package create_hold

import (
	"fmt"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	"github.com/Raorakshith/smartparking/internal/pricing"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if req.LotID == "" {
		return fmt.Errorf("%w: lotId is required", ErrInvalidInput)
	}
	if req.SpotID == "" {
		return fmt.Errorf("%w: spotId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// normalizeWindow переводит HH:MM в моменты времени и проверяет, что окно не пустое
func normalizeWindow(date time.Time, startClock, endClock string) (time.Time, time.Time, error) {
	start, end, err := pricing.NormalizeInterval(date, startClock, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s is not after start %s",
			domain.ErrInvalidWindow, endClock, startClock)
	}
	return start, end, nil
}

// validateLot проверяет место, активность лота и тариф
// Порядок проверок определяет, какая ошибка вернется первой
func validateLot(lot *domain.ParkingLot, spotID string) error {
	if _, ok := lot.FindSpot(spotID); !ok {
		return fmt.Errorf("%w: spot %s in lot %s", ErrSpotNotFound, spotID, lot.ID)
	}
	if !lot.Active {
		return ErrLotInactive
	}
	if lot.HourlyRate <= 0 {
		return fmt.Errorf("%w: lot %s has rate %v", domain.ErrInvalidRate, lot.ID, lot.HourlyRate)
	}
	return nil
}
