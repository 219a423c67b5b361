package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

const profileColumns = `id, first_name, last_name, phone, user_type, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	var phone sql.NullString
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &phone, &p.UserType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Phone = nullString(phone)
	return p, nil
}

// GetProfile возвращает профиль пользователя.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	p, err := scanProfile(s.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return p, nil
}

// UpsertProfile создаёт профиль или обновляет имя, телефон и тип учётной записи.
func (s *Storage) UpsertProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	const op = "storage.UpsertProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	res, err := scanProfile(s.DB.QueryRowContext(ctx, `
		INSERT INTO profiles (id, first_name, last_name, phone, user_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			phone      = EXCLUDED.phone,
			user_type  = EXCLUDED.user_type,
			updated_at = now()
		RETURNING `+profileColumns,
		p.ID, p.FirstName, p.LastName, p.Phone, p.UserType))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return res, nil
}

// ListProfiles возвращает все профили, новые первыми.
func (s *Storage) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	const op = "storage.ListProfiles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
