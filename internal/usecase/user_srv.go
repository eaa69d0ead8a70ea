package usecase

import (
	"context"
	"fmt"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"

	"go.uber.org/zap"
)

type UserService interface {
	// Register stores the user on first contact. Known ids are left untouched.
	Register(ctx context.Context, user *entity.User) (bool, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) Register(ctx context.Context, user *entity.User) (bool, error) {
	if user.ID < 1 || user.FirstName == "" {
		return false, fmt.Errorf("user id and first name are required: %w", ErrInvalidInput)
	}

	created, err := us.userRepo.Create(ctx, user)
	if err != nil {
		return false, fmt.Errorf("register user %d: %w", user.ID, err)
	}

	if created {
		us.log.Info("User registered", zap.Int64("user_id", user.ID))
	}
	return created, nil
}

func (us *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}
