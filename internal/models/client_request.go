package models

import "time"

// ClientRequest - обращение клиента: действие с полисом или дополнительная услуга.
type ClientRequest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	RequestType   string    `json:"request_type"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	AdminResponse *string   `json:"admin_response"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClientRequestWithProfile - заявка вместе с профилем автора, для админки.
type ClientRequestWithProfile struct {
	ClientRequest
	Profile *ProfileSummary `json:"profiles"`
}

// NewClientRequest - данные для вставки новой заявки.
type NewClientRequest struct {
	UserID      string
	RequestType string
	Category    string
	Description string
}

// ClientRequestResponse - ответ администратора на заявку.
type ClientRequestResponse struct {
	Status        string
	AdminResponse *string
}

// DummyClientRequest используется для приёма новой заявки из JSON-запроса.
type DummyClientRequest struct {
	RequestType string `json:"request_type" validate:"required,oneof=insurance service"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DummyClientRequestResponse используется для приёма ответа администратора.
type DummyClientRequestResponse struct {
	Status        string `json:"status" validate:"required,oneof=pending processing completed rejected"`
	AdminResponse string `json:"admin_response"`
}
