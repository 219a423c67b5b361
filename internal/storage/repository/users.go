package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

// RegisterUser в одной транзакции создаёт учётную запись, пустой профиль и роль.
// Возвращает идентификатор нового пользователя.
func (s *Storage) RegisterUser(ctx context.Context, user models.User, profile models.Profile, role models.Role) (string, error) {
	const op = "storage.RegisterUser"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var newID string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
			user.Email, user.PasswordHash,
		).Scan(&newID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profiles (id, first_name, last_name, phone, user_type) VALUES ($1, $2, $3, $4, $5)`,
			newID, profile.FirstName, profile.LastName, profile.Phone, profile.UserType,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, newID, string(role))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// GetUserByEmail возвращает учётную запись по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	u := &models.User{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}
