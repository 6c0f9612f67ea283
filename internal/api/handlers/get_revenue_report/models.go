package get_revenue_report

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
	getRevenueReport "github.com/Raorakshith/smartparking/internal/usecase/get_revenue_report"
)

type LotRevenueResponse struct {
	LotID         string  `json:"lotId"`
	LotName       string  `json:"lotName"`
	Revenue       float64 `json:"revenue"`
	BookingsCount int     `json:"bookingsCount"`
}

type DailyRevenueResponse struct {
	Date          string  `json:"date"`
	Revenue       float64 `json:"revenue"`
	BookingsCount int     `json:"bookingsCount"`
}

// RevenueReportResponse HTTP response model
type RevenueReportResponse struct {
	From          string                 `json:"from"`
	To            string                 `json:"to"`
	TotalRevenue  float64                `json:"totalRevenue"`
	BookingsCount int                    `json:"bookingsCount"`
	ByLot         []LotRevenueResponse   `json:"byLot"`
	ByDate        []DailyRevenueResponse `json:"byDate"`
}

// ToUseCaseRequest парсит границы периода "YYYY-MM-DD"
func ToUseCaseRequest(fromStr, toStr string) (*getRevenueReport.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}
	return &getRevenueReport.Request{From: from, To: to}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRevenueReport.Response) *RevenueReportResponse {
	out := &RevenueReportResponse{
		From:          resp.From.Format(domain.DateFormat),
		To:            resp.To.Format(domain.DateFormat),
		TotalRevenue:  resp.TotalRevenue,
		BookingsCount: resp.BookingsCount,
		ByLot:         make([]LotRevenueResponse, 0, len(resp.ByLot)),
		ByDate:        make([]DailyRevenueResponse, 0, len(resp.ByDate)),
	}
	for _, l := range resp.ByLot {
		out.ByLot = append(out.ByLot, LotRevenueResponse(l))
	}
	for _, d := range resp.ByDate {
		out.ByDate = append(out.ByDate, DailyRevenueResponse{
			Date:          d.Date.Format(domain.DateFormat),
			Revenue:       d.Revenue,
			BookingsCount: d.BookingsCount,
		})
	}
	return out
}
