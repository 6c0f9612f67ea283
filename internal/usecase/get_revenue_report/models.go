package get_revenue_report

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// MaxRangeDays максимальная длина отчетного периода
const MaxRangeDays = 366

// Request модель запроса отчета, границы включительно
type Request struct {
	From time.Time
	To   time.Time
}

// Response отчет о выручке за период
type Response struct {
	From          time.Time
	To            time.Time
	TotalRevenue  float64
	BookingsCount int
	ByLot         []domain.LotRevenue
	ByDate        []domain.DailyRevenue
}
