// Package create принимает новую заявку клиента: действие с полисом или дополнительную услугу.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

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
	Create(ctx context.Context, userID string, req models.DummyClientRequest) (*models.ClientRequest, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Nouvelle demande
// @Tags Dashboard
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.DummyClientRequest true "Demande"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /dashboard/requests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.create"

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

	var req models.DummyClientRequest
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

	created, err := h.service.Create(r.Context(), s.UserID, req)
	if errors.Is(err, services.ErrUnknownCategory) || errors.Is(err, services.ErrEmptyDescription) {
		log.Warn("request rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("failed to create request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible d'envoyer la demande"))
		return
	}

	log.Info("client request created", slog.String("id", created.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "Votre demande a été envoyée",
		"request": listview.RequestRows([]models.ClientRequest{*created})[0],
	}))
}
