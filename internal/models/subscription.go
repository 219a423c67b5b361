package models

import "time"

// Subscription - заявка на автостраховку, созданная клиентом через мастер.
// После создания поля автомобиля и гарантий не меняются, администратор
// меняет только статус и комментарий.
type Subscription struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Energy             string    `json:"energy"`
	Seats              int       `json:"seats"`
	Horsepower         int       `json:"horsepower"`
	CarteGriseURL      *string   `json:"carte_grise_url"`
	Guarantees         []string  `json:"guarantees"`
	InsuranceCompanies []string  `json:"insurance_companies"`
	ContractDurations  []string  `json:"contract_durations"`
	Status             string    `json:"status"`
	AdminComments      *string   `json:"admin_comments"`
	UpdatedBy          *string   `json:"updated_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewSubscription - данные для вставки одной строки подписки.
type NewSubscription struct {
	UserID             string
	FirstName          string
	LastName           string
	Phone              string
	Address            string
	Energy             string
	Seats              int
	Horsepower         int
	CarteGriseURL      *string
	Guarantees         []string
	InsuranceCompanies []string
	ContractDurations  []string
}

// SubscriptionStatusUpdate - изменение статуса подписки администратором.
type SubscriptionStatusUpdate struct {
	Status        string
	AdminComments *string
	UpdatedBy     string
}

// DummySubscriptionStatus используется для приёма нового статуса из JSON-запроса.
type DummySubscriptionStatus struct {
	Status        string `json:"status" validate:"required,oneof=pending in_review processing approved rejected"`
	AdminComments string `json:"admin_comments"`
}
