package bookings

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("bookings: access %w", domain.ErrForbidden)

	// ErrCannotCancel возвращается, когда бронирование не в статусе confirmed
	ErrCannotCancel = fmt.Errorf("bookings: booking cannot be cancelled: %w", domain.ErrInvalidState)

	// ErrAlreadyStarted возвращается при отмене брони, время которой уже началось
	ErrAlreadyStarted = fmt.Errorf("bookings: %w", domain.ErrAlreadyStarted)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
