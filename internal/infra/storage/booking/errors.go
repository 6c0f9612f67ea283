package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда статус бронирования изменился с момента чтения
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrHoldConflict возвращается, когда место уже занято на пересекающийся интервал
	ErrHoldConflict = errors.New("booking.repository: spot already held for overlapping window")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodePayment возвращается, если данные платежа не удалось сериализовать
	ErrEncodePayment = errors.New("booking.repository: failed to encode payment details")
)
