package souscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

func TestWriteError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	view := wizard.New().View()

	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantMsg   string
		wantGroup string
	}{
		{
			name:      "validation",
			err:       &wizard.ValidationError{Group: wizard.GroupDocument, Step: wizard.StepVehicleInfo, Message: "Veuillez télécharger la carte grise"},
			wantCode:  http.StatusUnprocessableEntity,
			wantMsg:   "Veuillez télécharger la carte grise",
			wantGroup: wizard.GroupDocument,
		},
		{
			name:     "seats not a number",
			err:      &subservices.UserError{Message: "Erreur lors de la soumission: Nombre de places invalide", Err: subservices.ErrInvalidSeats},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "Erreur lors de la soumission: Nombre de places invalide",
		},
		{
			name:     "upload failure",
			err:      &subservices.UserError{Message: "Erreur lors du téléchargement: quota", Err: errors.New("quota")},
			wantCode: http.StatusBadGateway,
			wantMsg:  "Erreur lors du téléchargement: quota",
		},
		{
			name:     "too large",
			err:      fmt.Errorf("wrap: %w", draftservices.ErrDocumentTooLarge),
			wantCode: http.StatusRequestEntityTooLarge,
			wantMsg:  "wrap: Le fichier est trop volumineux",
		},
		{
			name:     "not on last step",
			err:      wizard.ErrNotOnVerification,
			wantCode: http.StatusConflict,
			wantMsg:  "La soumission n'est possible qu'à l'étape de vérification",
		},
		{
			name:     "unexpected",
			err:      errors.New("redis down"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/souscription/submit", nil)

			WriteError(rec, req, log, view, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got struct {
				Status string         `json:"status"`
				Error  string         `json:"error"`
				Data   map[string]any `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, "Error", got.Status)
			assert.Equal(t, tt.wantMsg, got.Error)
			assert.Contains(t, got.Data, "step")
			if tt.wantGroup != "" {
				assert.Equal(t, tt.wantGroup, got.Data["group"])
			}
		})
	}
}
