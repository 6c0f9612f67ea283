package domain

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusTemporary BookingStatus = "temporary"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
)

// transitions единственная таблица допустимых переходов статуса
var transitions = map[BookingStatus][]BookingStatus{
	StatusTemporary: {StatusConfirmed, StatusExpired},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
	StatusExpired:   nil,
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, s)
	}
	return status, nil
}

// IsValid returns true for statuses present in the transition table
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves the status
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// PaymentDetails данные платежа от внешнего платёжного провайдера, хранятся как есть
type PaymentDetails struct {
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Reference string    `json:"reference,omitempty"`
}

// Booking represents a reservation of one spot for a time window
type Booking struct {
	ID          string
	UserID      string
	LotID       string
	SpotID      string
	BookingDate time.Time
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus

	// Тариф фиксируется при создании брони и используется при расчёте
	HourlyRate    float64
	DurationHours float64
	TotalCost     float64

	// Только для temporary
	ExpiresAt null.Time

	Payment *PaymentDetails

	// Заполняются при выезде
	ActualEndTime  null.Time
	ActualDuration null.Float
	AdditionalCost null.Float
	FinalCost      null.Float

	CancelledAt null.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransitionTo moves the booking to next if the transition table allows it
func (b *Booking) TransitionTo(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: booking %s cannot move from %s to %s", ErrInvalidState, b.ID, b.Status, next)
	}
	b.Status = next
	return nil
}

// IsHoldExpired returns true for a temporary booking whose expiry instant has passed
func (b *Booking) IsHoldExpired(now time.Time) bool {
	return b.Status == StatusTemporary && b.ExpiresAt.Valid && now.After(b.ExpiresAt.Time)
}

// IsLapsed returns true for a hold that is already marked expired or whose expiry has passed
func (b *Booking) IsLapsed(now time.Time) bool {
	return b.Status == StatusExpired || b.IsHoldExpired(now)
}

// BlocksSpot returns true if the booking makes its spot unavailable at now
func (b *Booking) BlocksSpot(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusTemporary:
		return !b.IsHoldExpired(now)
	default:
		return false
	}
}

// Overlaps checks the half-open intervals [StartTime, EndTime) and [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// IsOwnedBy returns true if the booking belongs to userID
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// EffectiveHourlyRate returns the stored rate, or derives it from the quote for rows without one
func (b *Booking) EffectiveHourlyRate() float64 {
	if b.HourlyRate > 0 {
		return b.HourlyRate
	}
	if b.DurationHours > 0 {
		return b.TotalCost / b.DurationHours
	}
	return 0
}

// PaymentAmount returns the confirmed payment amount or 0 when absent
func (b *Booking) PaymentAmount() float64 {
	if b.Payment == nil {
		return 0
	}
	return b.Payment.Amount
}

// BookingFilter фильтр для выборки бронирований
// Все поля опциональны, nil/пустое значение - без ограничения
type BookingFilter struct {
	UserID      *string
	LotID       *string
	SpotID      *string
	Statuses    []BookingStatus
	DateFrom    *time.Time // booking_date >= DateFrom
	DateTo      *time.Time // booking_date <= DateTo
	CreatedFrom *time.Time // created_at >= CreatedFrom
	CreatedTo   *time.Time // created_at < CreatedTo
	NewestFirst bool       // сортировка по created_at DESC
	Limit       int        // 0 - без лимита
}

// WithoutExpiredHolds drops lapsed holds, keeping order
// Результат не зависит от того, успела ли очистка пометить удержание
func WithoutExpiredHolds(bookings []*Booking, now time.Time) []*Booking {
	result := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsLapsed(now) {
			result = append(result, b)
		}
	}
	return result
}
