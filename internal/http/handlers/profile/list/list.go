// Package list отдаёт администратору список пользователей с поиском.
package list

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
	List(ctx context.Context) ([]models.Profile, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Liste des utilisateurs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param q query string false "Recherche par nom ou téléphone"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list profiles", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de charger les utilisateurs"))
		return
	}

	filtered := listview.FilterProfiles(res, r.URL.Query().Get("q"))
	log.Info("list profiles", slog.Int("count", len(filtered)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total":      len(res),
		"list_count": len(filtered),
		"users":      filtered,
	}))
}
