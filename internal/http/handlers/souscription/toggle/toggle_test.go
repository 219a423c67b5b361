package toggle

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/session"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

type DraftServiceMock struct {
	mock.Mock
}

var user1 = draftservices.Owner{UserID: "u1"}

func (m *DraftServiceMock) Toggle(ctx context.Context, o draftservices.Owner, group, code string, checked bool) (wizard.StepView, error) {
	args := m.Called(ctx, o, group, code, checked)
	return args.Get(0).(wizard.StepView), args.Error(1)
}

func TestToggleHandler_ServeHTTP(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	companies := wizard.Render(wizard.State{Step: wizard.StepCompanies, Form: wizard.NewForm()})

	tests := []struct {
		name      string
		group     string
		code      string
		body      string
		draftID   string
		setupMock func(m *DraftServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name:  "check company",
			group: "companies",
			code:  "NSIA Assurances",
			body:  `{"checked": true}`,
			setupMock: func(m *DraftServiceMock) {
				m.On("Toggle", mock.Anything, user1, "companies", "NSIA Assurances", true).Return(companies, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:  "uncheck is passed through",
			group: "durations",
			code:  "1_an",
			body:  `{"checked": false}`,
			setupMock: func(m *DraftServiceMock) {
				m.On("Toggle", mock.Anything, user1, "durations", "1_an", false).Return(companies, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:    "anonymous visitor",
			group:   "companies",
			code:    "NSIA Assurances",
			body:    `{"checked": true}`,
			draftID: "0b7d9a52-3c1e-4f6a-8d2b-6e9f1a4c7b30",
			setupMock: func(m *DraftServiceMock) {
				owner := draftservices.Owner{DraftID: "0b7d9a52-3c1e-4f6a-8d2b-6e9f1a4c7b30"}
				m.On("Toggle", mock.Anything, owner, "companies", "NSIA Assurances", true).Return(companies, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "checked missing",
			group:     "companies",
			code:      "NSIA Assurances",
			body:      `{}`,
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Checked is a required field",
		},
		{
			name:      "broken body",
			group:     "companies",
			code:      "NSIA Assurances",
			body:      `{`,
			wantCode:  http.StatusBadRequest,
			wantError: "invalid request body",
		},
		{
			name:  "unknown group",
			group: "colors",
			code:  "red",
			body:  `{"checked": true}`,
			setupMock: func(m *DraftServiceMock) {
				m.On("Toggle", mock.Anything, user1, "colors", "red", true).Return(wizard.StepView{}, draftservices.ErrUnknownGroup).Once()
			},
			wantCode:  http.StatusNotFound,
			wantError: draftservices.ErrUnknownGroup.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(DraftServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("group", tt.group)
			rctx.URLParams.Add("code", tt.code)

			req := httptest.NewRequest(http.MethodPost, "/souscription/"+tt.group+"/x", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			if tt.draftID != "" {
				req.Header.Set(souscription.DraftHeader, tt.draftID)
			} else {
				ctx = session.WithSession(ctx, session.Session{UserID: "u1"})
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			New(log, m).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.draftID != "" {
				assert.Equal(t, tt.draftID, rec.Header().Get(souscription.DraftHeader))
			}
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
			}
			m.AssertExpectations(t)
		})
	}
}
