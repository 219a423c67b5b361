// Package show отдаёт текущий шаг черновика мастера.
package show

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	View(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Étape courante du formulaire de souscription
// @Tags Souscription
// @Produce json
// @Success 200 {object} response.Response
// @Router /souscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.show"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner := souscription.Owner(w, r)

	view, err := h.service.View(r.Context(), owner)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}
	souscription.WriteView(w, r, view)
}
