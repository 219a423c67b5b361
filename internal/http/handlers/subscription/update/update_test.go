package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/models"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id, adminID, newStatus, comments string) (*models.Subscription, error) {
	args := m.Called(ctx, id, adminID, newStatus, comments)
	res, _ := args.Get(0).(*models.Subscription)
	return res, args.Error(1)
}

func (m *MockService) List(ctx context.Context, userID string, isAdmin bool) ([]models.Subscription, error) {
	args := m.Called(ctx, userID, isAdmin)
	res, _ := args.Get(0).([]models.Subscription)
	return res, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	const id = "8c0a4c1e-3b5e-4b7f-9d3c-1f2e3d4c5b6a"

	tests := []struct {
		name           string
		id             string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная смена статуса",
			id:          id,
			requestBody: models.DummySubscriptionStatus{Status: "approved", AdminComments: "Dossier complet"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, id, "admin-1", "approved", "Dossier complet").
					Return(&models.Subscription{ID: id, Status: "approved"}, nil).Once()
				m.On("List", mock.Anything, "admin-1", true).
					Return([]models.Subscription{{ID: id, Status: "approved"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Statut mis à jour"`,
		},
		{
			name:           "статус вне перечня",
			id:             id,
			requestBody:    models.DummySubscriptionStatus{Status: "completed"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Status must be one of",
		},
		{
			name:           "некорректный JSON",
			id:             id,
			requestBody:    "{",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "некорректный id",
			id:             "abc",
			requestBody:    models.DummySubscriptionStatus{Status: "approved"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "failed to decode id from url",
		},
		{
			name:        "статус не изменился",
			id:          id,
			requestBody: models.DummySubscriptionStatus{Status: "pending"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, id, "admin-1", "pending", "").
					Return(nil, subservices.ErrStatusUnchanged).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   subservices.ErrStatusUnchanged.Error(),
		},
		{
			name:        "подписка не найдена",
			id:          id,
			requestBody: models.DummySubscriptionStatus{Status: "approved"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, id, "admin-1", "approved", "").
					Return(nil, subservices.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Souscription introuvable",
		},
		{
			name:        "ошибка базы",
			id:          id,
			requestBody: models.DummySubscriptionStatus{Status: "approved"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, id, "admin-1", "approved", "").
					Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Impossible de mettre à jour le statut",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req := httptest.NewRequest(http.MethodPut, "/admin/subscriptions/"+tt.id+"/status", bytes.NewReader(body))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(session.WithSession(ctx, session.Session{UserID: "admin-1"}))
			rec := httptest.NewRecorder()

			New(logger, m).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}
