package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/session"
)

type SessionMock struct{ mock.Mock }

func (m *SessionMock) End(ctx context.Context, s session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func TestLogout(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := session.Session{UserID: "u1", TokenID: "jti"}

	tests := []struct {
		name        string
		withSession bool
		endErr      error
		wantCode    int
	}{
		{name: "ok", withSession: true, wantCode: http.StatusOK},
		{name: "no session", wantCode: http.StatusUnauthorized},
		{name: "revocation fails", withSession: true, endErr: errors.New("redis down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &SessionMock{}
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.withSession {
				m.On("End", mock.Anything, s).Return(tt.endErr).Once()
				req = req.WithContext(session.WithSession(req.Context(), s))
			}
			rec := httptest.NewRecorder()

			New(log, m).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			m.AssertExpectations(t)
		})
	}
}
