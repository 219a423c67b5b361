// Package services считает агрегаты для панели администратора.
package services

import (
	"context"
	"time"

	"github.com/deuxal/insurance-portal/internal/models"
)

// StatsRepository возвращает счётчики профилей и подписок.
type StatsRepository interface {
	Stats(ctx context.Context, since time.Time) (*models.Stats, error)
}

// StatsService считает новые записи с первого дня текущего месяца.
type StatsService struct {
	repo StatsRepository
	now  func() time.Time
}

func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

// Get возвращает статистику портала.
func (s *StatsService) Get(ctx context.Context) (*models.Stats, error) {
	return s.repo.Stats(ctx, MonthStart(s.now()))
}

// MonthStart возвращает полночь первого дня месяца в часовом поясе t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
