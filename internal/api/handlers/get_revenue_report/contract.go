package get_revenue_report

import (
	"context"

	getRevenueReport "github.com/Raorakshith/smartparking/internal/usecase/get_revenue_report"
)

type GetRevenueReportUseCase interface {
	Execute(ctx context.Context, req *getRevenueReport.Request) (*getRevenueReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
