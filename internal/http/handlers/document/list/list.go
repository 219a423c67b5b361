// Package list отдаёт администратору карты техпаспорта из хранилища.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context) ([]models.Document, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Cartes grises déposées
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse
// @Router /admin/documents [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	docs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list documents", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("Impossible de charger les documents"))
		return
	}

	log.Info("list documents", slog.Int("count", len(docs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(docs),
		"documents":  docs,
	}))
}
