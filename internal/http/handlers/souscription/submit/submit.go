// Package submit отправляет черновик мастера с шага проверки.
package submit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	"github.com/deuxal/insurance-portal/internal/http/response"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Submit(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Soumettre la souscription
// @Description Vérifie l'ensemble du formulaire. En cas d'erreur, le formulaire revient à l'étape concernée.
// @Tags Souscription
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Pas à l'étape de vérification"
// @Failure 422 {object} response.ErrorResponse "Formulaire incomplet"
// @Failure 502 {object} response.ErrorResponse "Échec du téléchargement ou de l'enregistrement"
// @Router /souscription/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if _, ok := souscription.UserID(w, r, log); !ok {
		return
	}
	owner := souscription.Owner(w, r)

	view, err := h.service.Submit(r.Context(), owner)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}

	log.Info("souscription submitted")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Votre souscription a été soumise avec succès !",
		"step":    view,
	}))
}
