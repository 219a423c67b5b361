// Package navigate переводит черновик на следующий или предыдущий шаг.
package navigate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// Direction - направление перехода.
type Direction int

const (
	Forward Direction = iota
	Backward
)

type Handler struct {
	log       *slog.Logger
	service   Service
	direction Direction
}

type Service interface {
	Next(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
	Prev(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
}

func New(log *slog.Logger, service Service, direction Direction) *Handler {
	return &Handler{log: log, service: service, direction: direction}
}

// ServeHTTP godoc
// @Summary Étape suivante ou précédente
// @Tags Souscription
// @Produce json
// @Success 200 {object} response.Response
// @Router /souscription/next [post]
// @Router /souscription/prev [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.navigate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner := souscription.Owner(w, r)

	move := h.service.Next
	if h.direction == Backward {
		move = h.service.Prev
	}
	view, err := move(r.Context(), owner)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}
	souscription.WriteView(w, r, view)
}
