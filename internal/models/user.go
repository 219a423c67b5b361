// Package models содержит доменные модели портала: учётные записи, профили,
// подписки на страхование, клиентские заявки и роли.
// Структуры используются в бизнес‑логике, хранилище и HTTP-слое.
package models

import "time"

// User - учётная запись, по которой выполняется вход.
type User struct {
	ID           string    // Идентификатор пользователя (uuid), совпадает с id профиля
	Email        string    // Электронная почта, уникальна
	PasswordHash string    // bcrypt-хэш пароля
	CreatedAt    time.Time // Дата регистрации
}

// Role - роль пользователя из таблицы user_roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)
