package respond

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/models"
	services "github.com/deuxal/insurance-portal/internal/services/request"
	"github.com/deuxal/insurance-portal/internal/session"
)

type RequestServiceMock struct {
	mock.Mock
}

func (m *RequestServiceMock) Respond(ctx context.Context, id, adminID string, req models.DummyClientRequestResponse) (*models.ClientRequest, error) {
	args := m.Called(ctx, id, adminID, req)
	res, _ := args.Get(0).(*models.ClientRequest)
	return res, args.Error(1)
}

func (m *RequestServiceMock) ListAll(ctx context.Context) ([]models.ClientRequestWithProfile, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]models.ClientRequestWithProfile)
	return res, args.Error(1)
}

func TestRespondHandler(t *testing.T) {
	const id = "0f8fad5b-d9cb-469f-a165-70867728950e"
	answered := &models.ClientRequest{ID: id, Status: "completed", RequestType: "insurance", Category: "renew"}

	tests := []struct {
		name      string
		id        string
		body      string
		setupMock func(m *RequestServiceMock)
		wantCode  int
		wantBody  string
	}{
		{
			name: "answered and reloaded",
			id:   id,
			body: `{"status":"completed","admin_response":"Police renouvelée"}`,
			setupMock: func(m *RequestServiceMock) {
				m.On("Respond", mock.Anything, id, "admin-1", models.DummyClientRequestResponse{
					Status: "completed", AdminResponse: "Police renouvelée",
				}).Return(answered, nil).Once()
				m.On("ListAll", mock.Anything).Return([]models.ClientRequestWithProfile{{ClientRequest: *answered}}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: `"label":"Terminé"`,
		},
		{
			name:     "status required",
			id:       id,
			body:     `{"admin_response":"ok"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "field Status is a required field",
		},
		{
			name:     "status outside request statuses",
			id:       id,
			body:     `{"status":"approved"}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "field Status must be one of",
		},
		{
			name:     "bad id",
			id:       "nope",
			body:     `{"status":"completed"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "failed to decode id from url",
		},
		{
			name: "missing request",
			id:   id,
			body: `{"status":"rejected"}`,
			setupMock: func(m *RequestServiceMock) {
				m.On("Respond", mock.Anything, id, "admin-1", mock.Anything).Return(nil, services.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
			wantBody: "Demande introuvable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(RequestServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req := httptest.NewRequest(http.MethodPut, "/admin/requests/"+tt.id, strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(session.WithSession(ctx, session.Session{UserID: "admin-1"}))
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), m).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			m.AssertExpectations(t)
		})
	}
}
