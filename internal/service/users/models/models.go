package models

import (
	"time"

	"github.com/Raorakshith/smartparking/internal/domain"
)

// UpsertProfileRequest профиль из токена и тела запроса
type UpsertProfileRequest struct {
	UserID string      `json:"-"`
	Role   domain.Role `json:"-"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
}

// UpdateRoleRequest запрос на смену роли
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
