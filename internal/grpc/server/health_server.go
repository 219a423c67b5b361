// Package server реализует gRPC-сервис здоровья портала.
//
// HealthServer отражает готовность зависимостей (PostgreSQL, Redis) в стандартном
// протоколе grpc.health.v1: общий статус под пустым именем сервиса и отдельный
// статус для каждой зависимости.
package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/deuxal/insurance-portal/internal/lib/sl"
)

// ServiceName - имя сервиса портала в протоколе здоровья.
const ServiceName = "insurance-portal"

// Pinger - зависимость, доступность которой проверяется.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer - реализация grpc.health.v1 поверх health.Server.
type HealthServer struct {
	*health.Server
	checks map[string]Pinger
	log    *slog.Logger
}

// NewHealthServer создает сервер; до первого Refresh все статусы NOT_SERVING.
func NewHealthServer(checks map[string]Pinger, log *slog.Logger) *HealthServer {
	s := &HealthServer{
		Server: health.NewServer(),
		checks: checks,
		log:    log,
	}
	s.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	for name := range checks {
		s.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return s
}

// Refresh опрашивает зависимости и обновляет статусы. Возвращает общий результат.
func (s *HealthServer) Refresh(ctx context.Context) bool {
	const op = "grpc.server.Refresh"

	ready := true
	for name, p := range s.checks {
		status := healthpb.HealthCheckResponse_SERVING
		if err := p.Ping(ctx); err != nil {
			s.log.Warn("dependency is not ready", slog.String("op", op), slog.String("component", name), sl.Err(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
			ready = false
		}
		s.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !ready {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.SetServingStatus("", overall)
	s.SetServingStatus(ServiceName, overall)
	return ready
}

// Poll вызывает Refresh с заданным интервалом до отмены ctx.
func (s *HealthServer) Poll(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
