// Package read реализует HTTP-обработчик для получения подписки по ID.
//
// Клиент видит только свои подписки, администратор любые; чужая подписка
// для клиента неотличима от несуществующей.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/listview"
	"github.com/deuxal/insurance-portal/internal/models"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
)

// Handler обрабатывает запросы на получение подписки по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
	isAdmin bool
}

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Get(ctx context.Context, id, userID string, isAdmin bool) (*models.Subscription, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, isAdmin bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		isAdmin: isAdmin,
	}
}

// ServeHTTP godoc
// @Summary Détails d'une souscription
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID de la souscription"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/subscriptions/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

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
	if _, err := uuid.Parse(id); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Get(r.Context(), id, s.UserID, h.isAdmin)
	if errors.Is(err, subservices.ErrNotFound) {
		log.Info("subscription not found", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(subservices.ErrNotFound.Error()))
		return
	}
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("success to read subscription", slog.String("id", res.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": listview.SubscriptionRows([]models.Subscription{*res})[0],
	}))
}
