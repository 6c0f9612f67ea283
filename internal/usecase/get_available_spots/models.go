package get_available_spots

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// Request модель запроса свободных мест
type Request struct {
	LotID     string    // ID парковочного лота
	Date      time.Time // Календарная дата (время суток игнорируется)
	StartTime string    // Начало окна "HH:MM"
	EndTime   string    // Конец окна "HH:MM"
}

// Response модель ответа со свободными местами
type Response struct {
	LotID       string
	LotName     string
	Date        time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Spots       []domain.Spot // Свободные места в порядке лота
	TotalSpots  int

	// Предварительная оценка с округлением до получаса
	HourlyRate     float64
	EstimatedHours float64
	EstimatedCost  float64
}
