package portal

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документации.
	_ "github.com/deuxal/insurance-portal/docs"
	"github.com/deuxal/insurance-portal/internal/http/handlers/auth/login"
	"github.com/deuxal/insurance-portal/internal/http/handlers/auth/logout"
	"github.com/deuxal/insurance-portal/internal/http/handlers/auth/register"
	documentlist "github.com/deuxal/insurance-portal/internal/http/handlers/document/list"
	"github.com/deuxal/insurance-portal/internal/http/handlers/document/download"
	"github.com/deuxal/insurance-portal/internal/http/handlers/document/remove"
	profilelist "github.com/deuxal/insurance-portal/internal/http/handlers/profile/list"
	profileread "github.com/deuxal/insurance-portal/internal/http/handlers/profile/read"
	profileupdate "github.com/deuxal/insurance-portal/internal/http/handlers/profile/update"
	"github.com/deuxal/insurance-portal/internal/http/handlers/public/catalog"
	"github.com/deuxal/insurance-portal/internal/http/handlers/public/info"
	requestcreate "github.com/deuxal/insurance-portal/internal/http/handlers/request/create"
	requestlist "github.com/deuxal/insurance-portal/internal/http/handlers/request/list"
	"github.com/deuxal/insurance-portal/internal/http/handlers/request/listall"
	"github.com/deuxal/insurance-portal/internal/http/handlers/request/respond"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/document"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/navigate"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/reset"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/show"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/submit"
	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription/toggle"
	souscriptionupdate "github.com/deuxal/insurance-portal/internal/http/handlers/souscription/update"
	"github.com/deuxal/insurance-portal/internal/http/handlers/stats"
	"github.com/deuxal/insurance-portal/internal/http/handlers/subscription/health"
	subscriptionlist "github.com/deuxal/insurance-portal/internal/http/handlers/subscription/list"
	subscriptionread "github.com/deuxal/insurance-portal/internal/http/handlers/subscription/read"
	subscriptionupdate "github.com/deuxal/insurance-portal/internal/http/handlers/subscription/update"
	"github.com/deuxal/insurance-portal/internal/http/middlewarectx"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/session"
)

// Pinger - зависимость, проверяемая в /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionManager разрешает и завершает сессии.
type SessionManager interface {
	middlewarectx.Resolver
	End(ctx context.Context, s session.Session) error
}

// Deps - сервисы, нужные обработчикам.
type Deps struct {
	Sessions      SessionManager
	Roles         middlewarectx.RoleChecker
	Auth          AuthService
	Souscription  SouscriptionService
	Subscriptions SubscriptionService
	Profiles      ProfileService
	Requests      RequestService
	Stats         stats.Service
	Documents     DocumentService
	Checks        map[string]Pinger

	MaxDocumentSize int64
}

type AuthService interface {
	login.Service
	register.Service
}

type SouscriptionService interface {
	show.Service
	souscriptionupdate.Service
	document.Service
	toggle.Service
	navigate.Service
	submit.Service
	reset.Service
}

type SubscriptionService interface {
	subscriptionlist.Service
	subscriptionupdate.Service
	subscriptionread.Service
}

type ProfileService interface {
	profileread.Service
	profileupdate.Service
	profilelist.Service
}

type RequestService interface {
	requestcreate.Service
	requestlist.Service
	listall.Service
	respond.Service
}

type DocumentService interface {
	documentlist.Service
	download.Service
	remove.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	checks := make(map[string]health.Pinger, len(d.Checks))
	for name, p := range d.Checks {
		checks[name] = p
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/", info.New(info.PageHome).ServeHTTP)
		r.Get("/about", info.New(info.PageAbout).ServeHTTP)
		r.Get("/catalog", catalog.New().ServeHTTP)
		r.Post("/register", register.New(logger, d.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, d.Auth).ServeHTTP)

		// Мастер souscription открыт без входа, отправка требует сессию
		r.Route("/souscription", func(r chi.Router) {
			r.Use(middlewarectx.OptionalAuth(d.Sessions, logger))
			r.Get("/", show.New(logger, d.Souscription).ServeHTTP)
			r.Patch("/", souscriptionupdate.New(logger, d.Souscription).ServeHTTP)
			r.Delete("/", reset.New(logger, d.Souscription).ServeHTTP)
			doc := document.New(logger, d.Souscription, d.MaxDocumentSize)
			r.Put("/document", doc.ServeHTTP)
			r.Delete("/document", doc.ServeHTTP)
			r.Post("/next", navigate.New(logger, d.Souscription, navigate.Forward).ServeHTTP)
			r.Post("/prev", navigate.New(logger, d.Souscription, navigate.Backward).ServeHTTP)
			r.With(middlewarectx.Auth(d.Sessions, logger)).
				Post("/submit", submit.New(logger, d.Souscription).ServeHTTP)
			r.Post("/{group}/{code}", toggle.New(logger, d.Souscription).ServeHTTP)
		})

		// Группа с аутентификацией по сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Auth(d.Sessions, logger))
			r.Post("/logout", logout.New(logger, d.Sessions).ServeHTTP)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/subscriptions", subscriptionlist.New(logger, d.Subscriptions, false).ServeHTTP)
				r.Get("/profile", profileread.New(logger, d.Profiles).ServeHTTP)
				r.Put("/profile", profileupdate.New(logger, d.Profiles).ServeHTTP)
				r.Get("/requests", requestlist.New(logger, d.Requests).ServeHTTP)
				r.Post("/requests", requestcreate.New(logger, d.Requests).ServeHTTP)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(d.Roles, models.RoleAdmin, logger))
				r.Get("/stats", stats.New(logger, d.Stats).ServeHTTP)
				r.Get("/users", profilelist.New(logger, d.Profiles).ServeHTTP)
				r.Get("/subscriptions", subscriptionlist.New(logger, d.Subscriptions, true).ServeHTTP)
				r.Get("/subscriptions/{id}", subscriptionread.New(logger, d.Subscriptions, true).ServeHTTP)
				r.Put("/subscriptions/{id}/status", subscriptionupdate.New(logger, d.Subscriptions).ServeHTTP)
				r.Get("/requests", listall.New(logger, d.Requests).ServeHTTP)
				r.Put("/requests/{id}", respond.New(logger, d.Requests).ServeHTTP)
				r.Get("/documents", documentlist.New(logger, d.Documents).ServeHTTP)
				r.Get("/documents/{name}", download.New(logger, d.Documents).ServeHTTP)
				r.Delete("/documents/{name}", remove.New(logger, d.Documents).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
