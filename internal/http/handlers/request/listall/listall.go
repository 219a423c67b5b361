// Package listall отдаёт администратору заявки всех клиентов вместе с профилем автора.
package listall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/listview"
	"github.com/deuxal/insurance-portal/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListAll(ctx context.Context) ([]models.ClientRequestWithProfile, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Demandes des clients
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param q query string false "Recherche"
// @Param status query string false "Statut"
// @Success 200 {object} response.Response
// @Router /admin/requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.listall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list requests", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de charger les demandes"))
		return
	}

	filtered := listview.FilterRequests(res, models.Filter{
		Search: r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	})
	log.Info("list all requests", slog.Int("count", len(filtered)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total":      len(res),
		"list_count": len(filtered),
		"requests":   listview.RequestRowsWithProfile(filtered),
	}))
}
