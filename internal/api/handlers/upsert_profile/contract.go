package upsert_profile

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/service/users/models"
)

type UserService interface {
	UpsertProfile(ctx context.Context, req *models.UpsertProfileRequest) (*models.UserResponse, error)
	Get(ctx context.Context, id string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
