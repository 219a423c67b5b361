// Package list реализует HTTP-обработчик списка подписок с поиском и фильтром по статусу.
//
// Один и тот же обработчик обслуживает кабинет клиента (только свои подписки)
// и админку (все подписки, с количеством по каждому статусу).
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
	"github.com/deuxal/insurance-portal/internal/session"
)

// Handler обрабатывает запросы на получение списка подписок.
type Handler struct {
	log      *slog.Logger // Логгер для записи информации и ошибок
	service  Service      // Сервис бизнес-логики подписок
	allUsers bool         // true для админки
}

// Service описывает интерфейс бизнес-логики чтения подписок.
type Service interface {
	List(ctx context.Context, userID string, isAdmin bool) ([]models.Subscription, error)
}

// New создает новый Handler. allUsers включает выдачу подписок всех клиентов.
func New(log *slog.Logger, service Service, allUsers bool) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		allUsers: allUsers,
	}
}

// ServeHTTP godoc
// @Summary Liste des souscriptions
// @Description Recherche par nom ou téléphone (q) et filtre par statut (status, "all" pour tous).
// @Tags Souscriptions
// @Security BearerAuth
// @Produce json
// @Param q query string false "Recherche"
// @Param status query string false "Statut"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /dashboard/subscriptions [get]
// @Router /admin/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

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

	res, err := h.service.List(r.Context(), s.UserID, h.allUsers)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Impossible de charger les souscriptions"))
		return
	}

	filter := models.Filter{
		Search: r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
	}
	filtered := listview.FilterSubscriptions(res, filter)

	data := map[string]any{
		"total":         len(res),
		"list_count":    len(filtered),
		"subscriptions": listview.SubscriptionRows(filtered),
	}
	if h.allUsers {
		data["counts"] = listview.SubscriptionCounts(res)
	}

	log.Info("list subscriptions", slog.Int("count", len(filtered)), slog.Bool("all_users", h.allUsers))
	render.JSON(w, r, response.StatusOKWithData(data))
}
