package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers the admin-driven user administration; the league has no
// open registration.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserInput struct {
	Username string
	Password string
	Admin    bool
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error) {
	if !actor.Admin {
		return nil, ErrNotAdmin
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, ErrUsernameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		PublicID:     uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashed),
		Admin:        input.Admin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByPublicID(ctx, publicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}
