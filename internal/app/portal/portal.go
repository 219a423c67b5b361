// Package portal собирает HTTP-приложение портала: хранилище, кэш, брокер,
// сервисы и маршруты.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/deuxal/insurance-portal/internal/app/grpchealth"
	"github.com/deuxal/insurance-portal/internal/authz"
	"github.com/deuxal/insurance-portal/internal/cache"
	"github.com/deuxal/insurance-portal/internal/config"
	"github.com/deuxal/insurance-portal/internal/grpc/server"
	"github.com/deuxal/insurance-portal/internal/lib/jwt"
	"github.com/deuxal/insurance-portal/internal/lib/rabbitmq"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/migrations"
	"github.com/deuxal/insurance-portal/internal/notify"
	"github.com/deuxal/insurance-portal/internal/objectstore"
	authservices "github.com/deuxal/insurance-portal/internal/services/auth"
	docservices "github.com/deuxal/insurance-portal/internal/services/documents"
	profileservices "github.com/deuxal/insurance-portal/internal/services/profile"
	requestservices "github.com/deuxal/insurance-portal/internal/services/request"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	statsservices "github.com/deuxal/insurance-portal/internal/services/stats"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
	"github.com/deuxal/insurance-portal/internal/storage/repository"
)

const (
	shutdownTimeout = 15 * time.Second
	brokerRetries   = 5
	brokerDelay     = 2 * time.Second
)

type App struct {
	server *http.Server
	health *grpchealth.App
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	broker *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.portal.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.CheckDatabaseReady(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	notifier, err := app.notifier(ctx, cfg.RabbitMQ)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	store := objectstore.NewClient(cfg.Backend.URL, cfg.Backend.APIKey)
	subscriptionService := subservices.NewSubscriptionService(db, store, notifier, cfg.Bucket, logger)

	deps := Deps{
		Sessions:      session.NewManager(jwtMaker, cacheRedis),
		Roles:         authz.NewChecker(db),
		Auth:          authservices.NewAuthService(db, jwtMaker, logger),
		Souscription:  draftservices.NewSouscriptionService(cacheRedis, subscriptionService, cfg.Souscription, logger),
		Subscriptions: subscriptionService,
		Profiles:      profileservices.NewProfileService(db, logger),
		Requests:      requestservices.NewRequestService(db, notifier, logger),
		Stats:         statsservices.NewStatsService(db),
		Documents:     docservices.NewDocumentService(store, db, cfg.Bucket, logger),
		Checks: map[string]Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
		MaxDocumentSize: cfg.MaxDocumentSize,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.AddressGRPC != "" {
		app.health, err = grpchealth.New(cfg.AddressGRPC, map[string]server.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		}, logger)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return app, nil
}

// notifier выбирает доставку уведомлений: брокер при заданном URL, иначе только лог.
func (a *App) notifier(ctx context.Context, cfg config.RabbitMQ) (notify.Notifier, error) {
	if cfg.URL == "" {
		a.logger.Info("rabbitmq url is empty, notifications go to log only")
		return notify.NewLogNotifier(a.logger), nil
	}
	conn, err := rabbitmq.Connect(ctx, cfg.URL, brokerRetries, brokerDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.PortalQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.broker = conn
	return notify.NewBrokerNotifier(ch, cfg.Exchange, a.logger), nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	if a.health != nil {
		go func() {
			if err := a.health.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
