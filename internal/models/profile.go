package models

import "time"

// Типы учётной записи профиля.
const (
	UserTypeClient    = "client"
	UserTypeApporteur = "apporteur"
)

// Profile - персональные данные, привязанные к учётной записи.
// Роль администратора хранится отдельно, в user_roles.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileSummary - часть профиля, которая подмешивается к заявкам в админке.
type ProfileSummary struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

// DummyProfile используется для приёма изменений профиля из JSON-запроса.
type DummyProfile struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	UserType  string `json:"user_type" validate:"omitempty,oneof=client apporteur"`
}
