// Package session описывает сессию пользователя портала и её жизненный цикл:
// Resolve при каждом запросе (проверка токена и отзыва) и End при выходе.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deuxal/insurance-portal/internal/lib/jwt"
)

var (
	// ErrRevoked возвращается для токена, сессия которого уже завершена.
	ErrRevoked = errors.New("session revoked")
	// ErrNoSession - в контексте запроса нет сессии.
	ErrNoSession = errors.New("no session in context")
)

// Session - текущий пользователь запроса.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenParser проверяет подпись и срок действия токена.
type TokenParser interface {
	ParseToken(token string) (*jwt.Claims, error)
}

// RevocationStore хранит идентификаторы отозванных токенов.
type RevocationStore interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Manager создаёт и завершает сессии.
type Manager struct {
	tokens  TokenParser
	revoked RevocationStore
	now     func() time.Time
}

func NewManager(tokens TokenParser, revoked RevocationStore) *Manager {
	return &Manager{tokens: tokens, revoked: revoked, now: time.Now}
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

// FromClaims строит сессию из claims только что выпущенного или проверенного токена.
func FromClaims(c *jwt.Claims) Session {
	s := Session{UserID: c.UserID(), Email: c.Email, TokenID: c.ID}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

// Resolve проверяет токен и возвращает сессию. Отозванный токен отклоняется.
func (m *Manager) Resolve(ctx context.Context, token string) (Session, error) {
	const op = "session.Resolve"
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	var revoked bool
	found, err := m.revoked.Get(ctx, revokedKey(claims.ID), &revoked)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if found && revoked {
		return Session{}, fmt.Errorf("%s: %w", op, ErrRevoked)
	}
	return FromClaims(claims), nil
}

// End отзывает токен сессии до истечения его срока.
func (m *Manager) End(ctx context.Context, s Session) error {
	const op = "session.End"
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.revoked.Set(ctx, revokedKey(s.TokenID), true, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type ctxKey struct{}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт сессию, положенную middleware авторизации.
func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}
