package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	userDomain "github.com/borrowhub/service-rental/internal/domain/user"
)

// CreateUserRequest holds the data needed to register a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest is a partial user update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService implements the user account use cases.
type UserService struct {
	users  userDomain.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user. A duplicate email fails with a conflict error.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	usr, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, usr); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", usr.ID().String()))

	dto := toUserDTO(usr)
	return &dto, nil
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := usr.Patch(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, usr); err != nil {
		return nil, err
	}

	dto := toUserDTO(usr)
	return &dto, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(usr)
	return &dto, nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, usr := range users {
		dtos[i] = toUserDTO(usr)
	}
	return dtos, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}

func toUserDTO(usr *userDomain.User) UserDTO {
	return UserDTO{
		ID:        usr.ID(),
		Name:      usr.Name(),
		Email:     usr.Email(),
		CreatedAt: usr.CreatedAt(),
	}
}
