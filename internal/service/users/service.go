package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Raorakshith/smartparking/internal/domain"
	userRepo "github.com/Raorakshith/smartparking/internal/infra/storage/user"
	"github.com/Raorakshith/smartparking/internal/service/users/models"
)

// Service сервис профилей пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpsertProfile создает профиль при первом входе или обновляет имя и email
// Роль берется из токена только для нового профиля
func (s *Service) UpsertProfile(ctx context.Context, req *models.UpsertProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpsertProfile: user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	u, err := s.userRepo.Upsert(ctx, &domain.User{
		ID:    req.UserID,
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  role,
	})
	if err != nil {
		s.logger.Error("UpsertProfile: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: UpsertProfile - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(u), nil
}

// Get получает профиль пользователя
func (s *Service) Get(ctx context.Context, id string) (*models.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Get: user id=%s not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Get: repository error for user=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUser(u), nil
}

// List получает всех пользователей
func (s *Service) List(ctx context.Context) (*models.UserListResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.UserListResponse{Users: make([]models.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, *models.FromDomainUser(u))
	}

	s.logger.Info("List: successfully fetched %d users", len(resp.Users))
	return resp, nil
}

// UpdateRole меняет роль пользователя, допустимы только user и admin
func (s *Service) UpdateRole(ctx context.Context, id string, req *models.UpdateRoleRequest) error {
	s.logger.Info("UpdateRole: user=%s, role=%s", id, req.Role)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("UpdateRole: %v", err)
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateRole: user id=%s not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("UpdateRole: repository error for user=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRole: user=%s is now %s", id, role)
	return nil
}
