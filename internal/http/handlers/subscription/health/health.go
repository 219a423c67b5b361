// Package health отдаёт состояние зависимостей сервиса: базы данных и Redis.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
)

// Pinger - зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    *slog.Logger
	checks map[string]Pinger
}

// New создаёт обработчик; ключи checks попадают в ответ как имена зависимостей.
func New(log *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.health"

	components := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(r.Context()); err != nil {
			h.log.Error("dependency is down", slog.String("op", op), slog.String("component", name), sl.Err(err))
			components[name] = "down"
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithData("service unavailable", map[string]any{
			"components": components,
		}))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status":     "ok",
		"components": components,
	}))
}
