// Package remove удаляет карту техпаспорта из хранилища и возвращает обновлённый список.
// Ссылка в подписке не меняется.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	services "github.com/deuxal/insurance-portal/internal/services/documents"
	"github.com/deuxal/insurance-portal/internal/session"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Delete(ctx context.Context, name, adminID string) ([]models.Document, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Supprimer une carte grise
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param name path string true "Nom du fichier"
// @Success 200 {object} response.Response
// @Router /admin/documents/{name} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, err := session.FromContext(r.Context())
	if err != nil {
		log.Error("session not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	name := chi.URLParam(r, "name")
	docs, err := h.service.Delete(r.Context(), name, s.UserID)
	if errors.Is(err, services.ErrInvalidName) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to delete document", slog.String("name", name), sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("Erreur lors de la suppression du document"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":    "Document supprimé",
		"list_count": len(docs),
		"documents":  docs,
	}))
}
