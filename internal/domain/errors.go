package domain

import "errors"

// Виды ошибок ядра бронирования
// Слои оборачивают их через fmt.Errorf("%w: ..."), вызывающие проверяют errors.Is
var (
	// ErrInvalidTimeFormat clock string is not HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidWindow end of the window is not after its start
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrInvalidRate hourly rate is not positive
	ErrInvalidRate = errors.New("invalid hourly rate")

	// ErrNotFound booking, lot, spot or user does not exist
	ErrNotFound = errors.New("not found")

	// ErrExpired hold was not confirmed in time
	ErrExpired = errors.New("hold expired")

	// ErrForbidden requester is not allowed to act on the resource
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState operation is not allowed in the current status
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyStarted booking start instant is in the past
	ErrAlreadyStarted = errors.New("booking already started")

	// ErrSpotUnavailable spot is held or booked for an overlapping window
	ErrSpotUnavailable = errors.New("spot unavailable")

	// ErrInvalidInput malformed request data
	ErrInvalidInput = errors.New("invalid input")
)
