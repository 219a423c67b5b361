// Package authz проверяет роли пользователей через функцию has_role в базе.
package authz

import (
	"context"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

// RoleRepository - источник назначений ролей.
type RoleRepository interface {
	HasRole(ctx context.Context, userID string, role models.Role) (bool, error)
}

// Checker отвечает на вопрос "есть ли у пользователя роль".
// Любая ошибка проверки считается отказом.
type Checker struct {
	roles RoleRepository
}

func NewChecker(roles RoleRepository) *Checker {
	return &Checker{roles: roles}
}

// CheckRole возвращает true, только если роль подтверждена хранилищем.
func (c *Checker) CheckRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	const op = "authz.CheckRole"
	if userID == "" {
		return false, nil
	}
	ok, err := c.roles.HasRole(ctx, userID, role)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}
