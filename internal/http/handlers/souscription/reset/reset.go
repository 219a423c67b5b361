// Package reset удаляет черновик мастера.
package reset

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
	Reset(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner := souscription.Owner(w, r)

	view, err := h.service.Reset(r.Context(), owner)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}
	log.Info("draft reset")
	souscription.WriteView(w, r, view)
}
