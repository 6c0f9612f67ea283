package pricing

import (
	"math"
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// Settlement result of closing a confirmed booking at checkout
type Settlement struct {
	CheckoutTime        time.Time
	ActualDurationHours float64
	OvertimeHours       float64
	AdditionalCost      float64
	FinalCost           float64
	Late                bool
}

// Settle computes the final cost of b when the driver leaves at now.
// Early checkout is charged for the time actually used, on-time checkout pays the quote,
// late checkout keeps the quote and adds the overtime surcharge.
func Settle(b *domain.Booking, now time.Time) Settlement {
	checkout := now
	if b.EndTime.Before(now) {
		checkout = b.EndTime
	}

	actual := math.Max(round2(Hours(b.StartTime, checkout)), 0)
	rate := b.EffectiveHourlyRate()

	// выезд ровно в конце окна стоит ровно как квота, без ошибки округления часов
	if now.Equal(b.EndTime) {
		return Settlement{
			CheckoutTime:        now,
			ActualDurationHours: actual,
			FinalCost:           b.TotalCost,
		}
	}

	if now.Before(b.EndTime) {
		return Settlement{
			CheckoutTime:        now,
			ActualDurationHours: actual,
			FinalCost:           actual * rate,
		}
	}

	overtime := Hours(b.EndTime, now)
	additional := OvertimeCost(rate, overtime)

	return Settlement{
		CheckoutTime:        now,
		ActualDurationHours: actual,
		OvertimeHours:       overtime,
		AdditionalCost:      additional,
		FinalCost:           b.TotalCost + additional,
		Late:                true,
	}
}
