package services

import (
	"context"
	"strings"

	"github.com/swiftload/loadboard-service/internal/models"
	"github.com/swiftload/loadboard-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService реализует регистрацию и администрирование пользователей.
type UserService struct {
	Users repository.UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

// Register регистрирует нового пользователя. Пароль хранится только
// в виде bcrypt-хэша.
func (s *UserService) Register(ctx context.Context, userReq models.RegisterRequest) (*models.User, error) {
	userReq.Email = strings.ToLower(strings.TrimSpace(userReq.Email))

	taken, err := s.Users.EmailExists(ctx, userReq.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userReq.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.Users.CreateUser(ctx, userReq, string(hash))
}

// GetUser возвращает пользователя по идентификатору.
func (s *UserService) GetUser(ctx context.Context, userId string) (*models.User, error) {
	return s.Users.GetUser(ctx, userId)
}

// DeleteUser удаляет пользователя. Доступно только администратору;
// грузы и ставки удаляемого пользователя уходят каскадом.
func (s *UserService) DeleteUser(ctx context.Context, userId, actingUserId string) error {
	actor, err := resolveActor(ctx, s.Users, actingUserId)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return models.ErrForbidden
	}
	return s.Users.DeleteUser(ctx, userId)
}
