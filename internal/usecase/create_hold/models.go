package create_hold

import "time"

// Request модель запроса на временное удержание места
type Request struct {
	UserID    string    // ID пользователя из токена
	LotID     string    // ID парковочного лота
	SpotID    string    // ID места в лоте
	Date      time.Time // Календарная дата (время суток игнорируется)
	StartTime string    // Начало "HH:MM"
	EndTime   string    // Конец "HH:MM"
}

// Response модель ответа с созданным удержанием
type Response struct {
	ID            string
	UserID        string
	LotID         string
	SpotID        string
	BookingDate   time.Time
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	HourlyRate    float64
	DurationHours float64
	TotalCost     float64
	ExpiresAt     time.Time // Удержание нужно подтвердить до этого момента
	CreatedAt     time.Time
}
