package manage_lots

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/service/lots/models"
)

type LotService interface {
	Create(ctx context.Context, req *models.LotRequest) (*models.LotResponse, error)
	Update(ctx context.Context, id string, req *models.LotRequest) (*models.LotResponse, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
