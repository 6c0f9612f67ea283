package list_lots

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/service/lots/models"
)

type LotService interface {
	List(ctx context.Context, includeInactive bool) (*models.LotListResponse, error)
	Get(ctx context.Context, id string) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
