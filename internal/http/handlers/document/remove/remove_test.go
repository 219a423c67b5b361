package remove

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
	services "github.com/deuxal/insurance-portal/internal/services/documents"
	"github.com/deuxal/insurance-portal/internal/session"
)

type DocumentServiceMock struct {
	mock.Mock
}

func (m *DocumentServiceMock) Delete(ctx context.Context, name, adminID string) ([]models.Document, error) {
	args := m.Called(ctx, name, adminID)
	res, _ := args.Get(0).([]models.Document)
	return res, args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		setupMock func(m *DocumentServiceMock)
		wantCode  int
		wantBody  string
	}{
		{
			name: "удалён и список обновлён",
			file: "u1-1700000000000.pdf",
			setupMock: func(m *DocumentServiceMock) {
				m.On("Delete", mock.Anything, "u1-1700000000000.pdf", "admin").
					Return([]models.Document{{PublicURL: "https://x/y.jpg"}}, nil).Once()
			},
			wantCode: http.StatusOK,
			wantBody: `"list_count":1`,
		},
		{
			name: "недопустимое имя",
			file: "..",
			setupMock: func(m *DocumentServiceMock) {
				m.On("Delete", mock.Anything, "..", "admin").Return(nil, services.ErrInvalidName).Once()
			},
			wantCode: http.StatusBadRequest,
			wantBody: "Nom de fichier invalide",
		},
		{
			name: "ошибка хранилища",
			file: "a.pdf",
			setupMock: func(m *DocumentServiceMock) {
				m.On("Delete", mock.Anything, "a.pdf", "admin").Return(nil, errors.New("503")).Once()
			},
			wantCode: http.StatusBadGateway,
			wantBody: "Erreur lors de la suppression du document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(DocumentServiceMock)
			tt.setupMock(m)

			req := httptest.NewRequest(http.MethodDelete, "/admin/documents/x", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("name", tt.file)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = session.WithSession(ctx, session.Session{UserID: "admin"})
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), m).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			m.AssertExpectations(t)
		})
	}
}
