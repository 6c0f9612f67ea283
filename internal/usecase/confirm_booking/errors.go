package confirm_booking

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("confirm_booking: booking %w", domain.ErrNotFound)

	// ErrNotTemporary возвращается, если бронь уже подтверждена или закрыта
	ErrNotTemporary = fmt.Errorf("confirm_booking: booking is not a hold: %w", domain.ErrInvalidState)

	// ErrHoldExpired возвращается, если удержание не подтвердили вовремя
	ErrHoldExpired = fmt.Errorf("confirm_booking: %w", domain.ErrExpired)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("confirm_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
