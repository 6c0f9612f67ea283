package manage_users

import (
	"context"

	"github.com/Raorakshith/smartparking/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context) (*models.UserListResponse, error)
	UpdateRole(ctx context.Context, id string, req *models.UpdateRoleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
