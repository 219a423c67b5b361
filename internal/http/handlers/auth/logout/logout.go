// Package logout завершает текущую сессию: её токен отзывается до истечения срока.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/session"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service завершает сессию.
type Service interface {
	End(ctx context.Context, s session.Session) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Déconnexion
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	if err = h.service.End(r.Context(), s); err != nil {
		log.Error("failed to end session", sl.UserID(s.UserID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not end session"))
		return
	}

	log.Info("session ended", sl.UserID(s.UserID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logged_out": true,
	}))
}
