package repository

import (
	"context"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

// HasRole вызывает функцию базы has_role.
func (s *Storage) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	const op = "storage.HasRole"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var ok bool
	if err := s.DB.QueryRowContext(ctx, `SELECT has_role($1::uuid, $2::app_role)`, userID, string(role)).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// AssignRole выдаёт роль; повторная выдача ничего не меняет.
func (s *Storage) AssignRole(ctx context.Context, userID string, role models.Role) error {
	const op = "storage.AssignRole"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
