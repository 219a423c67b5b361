// Package respond сохраняет ответ администратора на заявку и возвращает обновлённый список.
package respond

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/listview"
	"github.com/deuxal/insurance-portal/internal/models"
	services "github.com/deuxal/insurance-portal/internal/services/request"
	"github.com/deuxal/insurance-portal/internal/session"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Respond(ctx context.Context, id, adminID string, req models.DummyClientRequestResponse) (*models.ClientRequest, error)
	ListAll(ctx context.Context) ([]models.ClientRequestWithProfile, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Répondre à une demande
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID de la demande"
// @Param request body models.DummyClientRequestResponse true "Réponse"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/requests/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.respond"

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

	id := chi.URLParam(r, "id")
	if _, err = uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyClientRequestResponse
	if err = render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.Respond(r.Context(), id, s.UserID, req)
	switch {
	case errors.Is(err, services.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case errors.Is(err, services.ErrInvalidStatus):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to respond to request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible d'enregistrer la réponse"))
		return
	}
	log.Info("request answered", slog.String("id", id), slog.String("status", updated.Status))

	all, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to reload requests", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de charger les demandes"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":  "Réponse enregistrée",
		"request":  listview.RequestRows([]models.ClientRequest{*updated})[0],
		"requests": listview.RequestRowsWithProfile(all),
	}))
}
