package create_hold

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrLotNotFound возвращается, когда парковочный лот не найден
	ErrLotNotFound = fmt.Errorf("create_hold: lot %w", domain.ErrNotFound)

	// ErrSpotNotFound возвращается, когда места нет в лоте
	ErrSpotNotFound = fmt.Errorf("create_hold: spot %w", domain.ErrNotFound)

	// ErrLotInactive возвращается для отключенного лота
	ErrLotInactive = fmt.Errorf("create_hold: lot is inactive: %w", domain.ErrInvalidState)

	// ErrSpotUnavailable возвращается, когда место занято на пересекающееся окно
	ErrSpotUnavailable = fmt.Errorf("create_hold: %w", domain.ErrSpotUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_hold: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
