package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/session"
)

// RoleChecker проверяет роль пользователя.
type RoleChecker interface {
	CheckRole(ctx context.Context, userID string, role models.Role) (bool, error)
}

// RequireRole пропускает запрос, только если у пользователя сессии есть роль.
// Ошибка проверки считается отказом и даёт 403.
func RequireRole(checker RoleChecker, role models.Role, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			log := log.With(
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

			ok, err := checker.CheckRole(r.Context(), s.UserID, role)
			if err != nil {
				log.Error("role check failed", sl.UserID(s.UserID), sl.Err(err))
			}
			if !ok {
				log.Warn("access denied", sl.UserID(s.UserID), slog.String("role", string(role)))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Accès refusé"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
