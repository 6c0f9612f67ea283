package lots

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrLotNotFound возвращается, когда лот не найден
	ErrLotNotFound = fmt.Errorf("lots: lot %w", domain.ErrNotFound)

	// ErrLotInUse возвращается при удалении лота с подтвержденными бронированиями
	ErrLotInUse = fmt.Errorf("lots: lot has confirmed bookings: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("lots: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lots: internal error")
)
