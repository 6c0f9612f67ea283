package get_revenue_report

import (
	"errors"
	"fmt"

	"github.com/Raorakshith/smartparking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном диапазоне дат
	ErrInvalidInput = fmt.Errorf("get_revenue_report: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_revenue_report: internal error")
)
