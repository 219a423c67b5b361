// Package services содержит логику бизнес-уровня для регистрации и входа пользователей.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/deuxal/insurance-portal/internal/lib/jwt"
	"github.com/deuxal/insurance-portal/internal/lib/password"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/storage/repository"
)

var (
	// ErrInvalidCredentials - неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")
	// ErrEmailTaken - email уже зарегистрирован.
	ErrEmailTaken = errors.New("Un compte existe déjà avec cet email")
)

// UserRepository описывает контракт для работы с учётными записями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет пользователя, его профиль и роль и возвращает ID.
	RegisterUser(ctx context.Context, user models.User, profile models.Profile, role models.Role) (string, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenMaker выпускает токены сессии.
type TokenMaker interface {
	GenerateToken(userID, email string) (string, *jwt.Claims, error)
}

// Registration - данные формы регистрации.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	UserType  string
}

// AuthService отвечает за регистрацию и вход.
type AuthService struct {
	users    UserRepository
	jwtMaker TokenMaker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker TokenMaker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создаёт учётную запись с хэшированным паролем, профиль и роль "user".
func (s *AuthService) Register(ctx context.Context, reg Registration) (string, error) {
	const op = "services.Register"
	hashed, err := password.GetHash(reg.Password)
	if err != nil {
		return "", err
	}

	userType := reg.UserType
	if userType == "" {
		userType = models.UserTypeClient
	}
	profile := models.Profile{
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
		UserType:  userType,
	}
	if phone := strings.TrimSpace(reg.Phone); phone != "" {
		profile.Phone = &phone
	}

	user := models.User{
		Email:        normalizeEmail(reg.Email),
		PasswordHash: hashed,
	}
	id, err := s.users.RegisterUser(ctx, user, profile, models.RoleUser)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return "", ErrEmailTaken
	}
	if err != nil {
		s.log.Error("failed to register user", slog.String("op", op), sl.Err(err))
		return "", err
	}
	s.log.Info("user registered", slog.String("op", op), sl.UserID(id))
	return id, nil
}

// Login проверяет пароль и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *jwt.Claims, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.ID, user.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
