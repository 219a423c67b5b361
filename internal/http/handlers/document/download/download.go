// Package download отдаёт содержимое карты техпаспорта как вложение.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	services "github.com/deuxal/insurance-portal/internal/services/documents"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Download(ctx context.Context, name string) ([]byte, string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Télécharger une carte grise
// @Tags Admin
// @Security BearerAuth
// @Produce octet-stream
// @Param name path string true "Nom du fichier"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/documents/{name} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.download"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "name")
	data, contentType, err := h.service.Download(r.Context(), name)
	switch {
	case errors.Is(err, services.ErrInvalidName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case errors.Is(err, services.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to download document", slog.String("name", name), sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("Erreur lors du téléchargement du document"))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write document", sl.Err(err))
	}
}
