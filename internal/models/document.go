package models

import "time"

// StoredObject - объект в файловом хранилище.
type StoredObject struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Metadata  map[string]any `json:"metadata"`
}

// SubscriptionDocumentRef - подписка, у которой есть ссылка на карту техпаспорта.
type SubscriptionDocumentRef struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CarteGriseURL string    `json:"carte_grise_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// Document - файл из хранилища и подписка, к которой он относится (если найдена).
type Document struct {
	Object       StoredObject             `json:"object"`
	PublicURL    string                   `json:"public_url"`
	Subscription *SubscriptionDocumentRef `json:"subscription,omitempty"`
}
