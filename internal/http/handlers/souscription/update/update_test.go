package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/session"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

type DraftServiceMock struct {
	mock.Mock
}

var (
	user1   = draftservices.Owner{UserID: "u1"}
	draftID = "5f0c2b2e-8a59-4d7e-9a43-0d6f3c1f2a11"
)

func (m *DraftServiceMock) Update(ctx context.Context, o draftservices.Owner, p wizard.Patch) (wizard.StepView, error) {
	args := m.Called(ctx, o, p)
	return args.Get(0).(wizard.StepView), args.Error(1)
}

func TestUpdateHandler_ServeHTTP(t *testing.T) {
	vehicle := wizard.Render(wizard.State{Step: wizard.StepVehicleInfo, Form: wizard.NewForm()})

	tests := []struct {
		name      string
		body      string
		session   bool
		draftID   string
		setupMock func(m *DraftServiceMock)
		wantCode  int
		wantBody  string
	}{
		{
			name:    "поля автомобиля",
			body:    `{"energy":"diesel","seats":"5"}`,
			session: true,
			setupMock: func(m *DraftServiceMock) {
				m.On("Update", mock.Anything, user1, mock.MatchedBy(func(p wizard.Patch) bool {
					return p.Energy != nil && *p.Energy == "diesel" &&
						p.Seats != nil && *p.Seats == "5" && p.FirstName == nil
				})).Return(vehicle, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: `"heading":"Informations du véhicule"`,
		},
		{
			name:     "неизвестная энергия",
			body:     `{"energy":"charbon"}`,
			session:  true,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "field Energy must be one of [essence diesel electrique hybride]",
		},
		{
			name:     "битый JSON",
			body:     `{"energy":`,
			session:  true,
			wantCode: http.StatusBadRequest,
			wantBody: "invalid request body",
		},
		{
			name:    "анонимный посетитель с черновиком",
			body:    `{"first_name":"Kossi"}`,
			draftID: draftID,
			setupMock: func(m *DraftServiceMock) {
				m.On("Update", mock.Anything, draftservices.Owner{DraftID: draftID}, mock.Anything).Return(vehicle, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "анонимный посетитель без черновика",
			body: `{"first_name":"Kossi"}`,
			setupMock: func(m *DraftServiceMock) {
				m.On("Update", mock.Anything, mock.MatchedBy(func(o draftservices.Owner) bool {
					return o.UserID == "" && o.DraftID != ""
				}), mock.Anything).Return(vehicle, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:    "ошибка хранилища черновиков",
			body:    `{"first_name":"Kossi"}`,
			session: true,
			setupMock: func(m *DraftServiceMock) {
				m.On("Update", mock.Anything, user1, mock.Anything).Return(wizard.StepView{}, errors.New("redis down")).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(DraftServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			req := httptest.NewRequest(http.MethodPatch, "/souscription", strings.NewReader(tt.body))
			if tt.session {
				req = req.WithContext(session.WithSession(req.Context(), session.Session{UserID: "u1"}))
			}
			if tt.draftID != "" {
				req.Header.Set(souscription.DraftHeader, tt.draftID)
			}
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), m).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if !tt.session {
				assert.NotEmpty(t, rec.Header().Get(souscription.DraftHeader))
			}
			if tt.draftID != "" {
				assert.Equal(t, tt.draftID, rec.Header().Get(souscription.DraftHeader))
			}
			m.AssertExpectations(t)
		})
	}
}
