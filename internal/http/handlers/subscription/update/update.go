// Package update реализует смену статуса подписки администратором.
package update

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
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	UpdateStatus(ctx context.Context, id, adminID, newStatus, comments string) (*models.Subscription, error)
	List(ctx context.Context, userID string, isAdmin bool) ([]models.Subscription, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Changer le statut d'une souscription
// @Description Enregistre le statut, le commentaire et l'administrateur, puis renvoie la liste rechargée.
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID de la souscription"
// @Param request body models.DummySubscriptionStatus true "Nouveau statut"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Statut inchangé"
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/subscriptions/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"

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

	var req models.DummySubscriptionStatus
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

	id := chi.URLParam(r, "id")
	if _, err = uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, s.UserID, req.Status, req.AdminComments)
	switch {
	case errors.Is(err, subservices.ErrNotFound):
		log.Info("subscription not found", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(subservices.ErrNotFound.Error()))
		return
	case errors.Is(err, subservices.ErrStatusUnchanged):
		log.Info("status unchanged", slog.String("id", id), slog.String("status", req.Status))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(subservices.ErrStatusUnchanged.Error()))
		return
	case errors.Is(err, subservices.ErrInvalidStatus):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(subservices.ErrInvalidStatus.Error()))
		return
	case err != nil:
		log.Error("failed to update subscription status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de mettre à jour le statut"))
		return
	}
	log.Info("subscription status updated", slog.String("id", id), slog.String("status", updated.Status))

	all, err := h.service.List(r.Context(), s.UserID, true)
	if err != nil {
		log.Error("failed to reload subscriptions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de charger les souscriptions"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message":       "Statut mis à jour",
		"subscription":  listview.SubscriptionRows([]models.Subscription{*updated})[0],
		"subscriptions": listview.SubscriptionRows(all),
		"counts":        listview.SubscriptionCounts(all),
	}))
}
