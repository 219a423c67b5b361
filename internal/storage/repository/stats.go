package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deuxal/insurance-portal/internal/models"
)

// Stats считает профили и подписки: всего и созданные начиная с since.
func (s *Storage) Stats(ctx context.Context, since time.Time) (*models.Stats, error) {
	const op = "storage.Stats"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var st models.Stats
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM subscriptions),
			(SELECT COUNT(*) FROM profiles WHERE created_at >= $1),
			(SELECT COUNT(*) FROM subscriptions WHERE created_at >= $1)`, since,
	).Scan(&st.TotalUsers, &st.TotalSubscriptions, &st.NewUsersThisMonth, &st.NewSubscriptionsThisMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}
