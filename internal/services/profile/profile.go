// Package services реализует редактор профиля клиента.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/storage/repository"
)

// ProfileRepository определяет методы для работы с профилями в хранилище.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

// ProfileService читает и сохраняет профиль текущего пользователя.
type ProfileService struct {
	repo ProfileRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// Get возвращает профиль. Если строки ещё нет, возвращается пустой профиль клиента.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Profile{ID: userID, UserType: models.UserTypeClient}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update создаёт или обновляет профиль. Пустой телефон сохраняется как NULL,
// пустой тип учётной записи - как "client".
func (s *ProfileService) Update(ctx context.Context, userID string, req models.DummyProfile) (*models.Profile, error) {
	const op = "services.UpdateProfile"
	p := models.Profile{
		ID:        userID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		UserType:  req.UserType,
	}
	if p.UserType == "" {
		p.UserType = models.UserTypeClient
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		p.Phone = &phone
	}

	res, err := s.repo.UpsertProfile(ctx, p)
	if err != nil {
		s.log.Error("failed to upsert profile", slog.String("op", op), sl.UserID(userID), sl.Err(err))
		return nil, err
	}
	s.log.Info("profile updated", slog.String("op", op), sl.UserID(userID))
	return res, nil
}

// List возвращает все профили для администратора.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.repo.ListProfiles(ctx)
}
