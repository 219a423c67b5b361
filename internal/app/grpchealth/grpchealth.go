// Package grpchealth запускает gRPC-сервер со стандартным сервисом здоровья.
package grpchealth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/deuxal/insurance-portal/internal/grpc/server"
)

// PollInterval - как часто опрашиваются зависимости.
const PollInterval = 10 * time.Second

type App struct {
	grpcServer *grpc.Server
	health     *server.HealthServer
	listener   net.Listener
	logger     *slog.Logger
}

func New(addr string, checks map[string]server.Pinger, logger *slog.Logger) (*App, error) {
	const op = "app.grpchealth.New"

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewWithListener(lis, checks, logger), nil
}

// NewWithListener собирает приложение на готовом listener.
func NewWithListener(lis net.Listener, checks map[string]server.Pinger, logger *slog.Logger) *App {
	hs := server.NewHealthServer(checks, logger)
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	return &App{
		grpcServer: grpcServer,
		health:     hs,
		listener:   lis,
		logger:     logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.health.Poll(pollCtx, PollInterval)

	go func() {
		a.logger.Info("gRPC health service listening on", slog.String("address", a.listener.Addr().String()))
		errCh <- a.grpcServer.Serve(a.listener)
	}()

	select {
	case <-ctx.Done():
		a.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}
