package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/models"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id, userID string, isAdmin bool) (*models.Subscription, error) {
	args := m.Called(ctx, id, userID, isAdmin)
	res, _ := args.Get(0).(*models.Subscription)
	return res, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	const id = "8c0a4c1e-3b5e-4b7f-9d3c-1f2e3d4c5b6a"

	tests := []struct {
		name           string
		id             string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение подписки",
			id:   id,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, id, "admin-1", true).
					Return(&models.Subscription{ID: id, Status: "in_review"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"label":"En cours d'examen"`,
		},
		{
			name:           "некорректный id",
			id:             "42",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name: "подписка не найдена",
			id:   id,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, id, "admin-1", true).Return(nil, subservices.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Souscription introuvable",
		},
		{
			name: "ошибка сервиса",
			id:   id,
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, id, "admin-1", true).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not read subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req := httptest.NewRequest(http.MethodGet, "/admin/subscriptions/"+tt.id, nil)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(session.WithSession(ctx, session.Session{UserID: "admin-1"}))
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), m, true).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}
