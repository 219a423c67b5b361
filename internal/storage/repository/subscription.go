package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

const subscriptionColumns = `id, user_id, first_name, last_name, phone, address, energy, seats, horsepower,
	carte_grise_url, guarantees, insurance_companies, contract_durations, status, admin_comments,
	updated_by, created_at, updated_at`

func (s *Storage) scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var carteGrise, comments, updatedBy sql.NullString
	err := row.Scan(&sub.ID, &sub.UserID, &sub.FirstName, &sub.LastName, &sub.Phone, &sub.Address,
		&sub.Energy, &sub.Seats, &sub.Horsepower, &carteGrise,
		s.textArray(&sub.Guarantees), s.textArray(&sub.InsuranceCompanies), s.textArray(&sub.ContractDurations),
		&sub.Status, &comments, &updatedBy, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sub.CarteGriseURL = nullString(carteGrise)
	sub.AdminComments = nullString(comments)
	sub.UpdatedBy = nullString(updatedBy)
	return sub, nil
}

// CreateSubscription вставляет одну строку подписки со статусом pending и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.NewSubscription) (string, error) {
	const op = "storage.CreateSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	query := `INSERT INTO subscriptions (user_id, first_name, last_name, phone, address, energy,
			      seats, horsepower, carte_grise_url, guarantees, insurance_companies, contract_durations)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.FirstName, sub.LastName, sub.Phone, sub.Address, sub.Energy,
		sub.Seats, sub.Horsepower, sub.CarteGriseURL,
		nonNil(sub.Guarantees), nonNil(sub.InsuranceCompanies), nonNil(sub.ContractDurations),
	).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// ListSubscriptions возвращает подписки пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	return s.querySubscriptions(ctx, op,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAllSubscriptions возвращает подписки всех пользователей, новые первыми.
func (s *Storage) ListAllSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	return s.querySubscriptions(ctx, op,
		`SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY created_at DESC`)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Subscription{}
	for rows.Next() {
		sub, err := s.scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSubscription возвращает подписку по ID.
func (s *Storage) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	sub, err := s.scanSubscription(s.DB.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return sub, nil
}

// UpdateSubscriptionStatus меняет статус и комментарий, записывает автора и время изменения.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, id string, upd models.SubscriptionStatusUpdate) (*models.Subscription, error) {
	const op = "storage.UpdateSubscriptionStatus"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	sub, err := s.scanSubscription(s.DB.QueryRowContext(ctx, `
		UPDATE subscriptions
		SET status = $1, admin_comments = $2, updated_by = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+subscriptionColumns,
		upd.Status, upd.AdminComments, upd.UpdatedBy, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return sub, nil
}

// ListSubscriptionDocumentRefs возвращает подписки, у которых сохранена ссылка на документ.
func (s *Storage) ListSubscriptionDocumentRefs(ctx context.Context) ([]models.SubscriptionDocumentRef, error) {
	const op = "storage.ListSubscriptionDocumentRefs"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, first_name, last_name, carte_grise_url, created_at
		FROM subscriptions
		WHERE carte_grise_url IS NOT NULL
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.SubscriptionDocumentRef{}
	for rows.Next() {
		var ref models.SubscriptionDocumentRef
		if err = rows.Scan(&ref.ID, &ref.FirstName, &ref.LastName, &ref.CarteGriseURL, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
