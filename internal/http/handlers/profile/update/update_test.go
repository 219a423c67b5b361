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

	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/session"
)

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) Update(ctx context.Context, userID string, req models.DummyProfile) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	res, _ := args.Get(0).(*models.Profile)
	return res, args.Error(1)
}

func TestUpdateProfileHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		session   bool
		setupMock func(m *ProfileServiceMock)
		wantCode  int
		wantBody  string
	}{
		{
			name:    "saved",
			body:    `{"first_name":"Afi","last_name":"Agbeko","phone":"+228 91","user_type":"apporteur"}`,
			session: true,
			setupMock: func(m *ProfileServiceMock) {
				m.On("Update", mock.Anything, "u1", models.DummyProfile{
					FirstName: "Afi", LastName: "Agbeko", Phone: "+228 91", UserType: "apporteur",
				}).Return(&models.Profile{ID: "u1", FirstName: "Afi", LastName: "Agbeko", UserType: "apporteur"}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: "Profil mis à jour avec succès",
		},
		{
			name:     "unknown user type",
			body:     `{"first_name":"Afi","last_name":"Agbeko","user_type":"broker"}`,
			session:  true,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "field UserType must be one of [client apporteur]",
		},
		{
			name:     "no session",
			body:     `{"first_name":"Afi","last_name":"Agbeko"}`,
			wantCode: http.StatusUnauthorized,
			wantBody: "unauthorized",
		},
		{
			name:    "storage failure",
			body:    `{"first_name":"Afi","last_name":"Agbeko"}`,
			session: true,
			setupMock: func(m *ProfileServiceMock) {
				m.On("Update", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantCode: http.StatusInternalServerError,
			wantBody: "Impossible de mettre à jour le profil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(ProfileServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			req := httptest.NewRequest(http.MethodPut, "/dashboard/profile", strings.NewReader(tt.body))
			if tt.session {
				req = req.WithContext(session.WithSession(req.Context(), session.Session{UserID: "u1"}))
			}
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), m).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			m.AssertExpectations(t)
		})
	}
}
