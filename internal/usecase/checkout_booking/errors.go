package checkout_booking

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("checkout_booking: booking %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, если выезд оформляет не владелец и не администратор
	ErrAccessDenied = fmt.Errorf("checkout_booking: %w", domain.ErrForbidden)

	// ErrNotConfirmed возвращается для брони не в статусе confirmed
	ErrNotConfirmed = fmt.Errorf("checkout_booking: booking is not confirmed: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("checkout_booking: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout_booking: internal error")
)
