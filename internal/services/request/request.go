// Package services реализует клиентские заявки: создание клиентом, просмотр
// и ответ администратора.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/deuxal/insurance-portal/internal/catalog"
	"github.com/deuxal/insurance-portal/internal/lib/metrics"
	"github.com/deuxal/insurance-portal/internal/lib/rabbitmq"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/notify"
	"github.com/deuxal/insurance-portal/internal/status"
	"github.com/deuxal/insurance-portal/internal/storage/repository"
)

var (
	ErrUnknownCategory  = errors.New("Catégorie de demande inconnue")
	ErrEmptyDescription = errors.New("Veuillez décrire votre demande")
	ErrInvalidStatus    = errors.New("Statut invalide")
	ErrNotFound         = errors.New("Demande introuvable")
)

// RequestRepository определяет методы для работы с заявками в хранилище.
type RequestRepository interface {
	CreateClientRequest(ctx context.Context, req models.NewClientRequest) (*models.ClientRequest, error)
	ListClientRequests(ctx context.Context, userID string) ([]models.ClientRequest, error)
	ListAllClientRequests(ctx context.Context) ([]models.ClientRequestWithProfile, error)
	RespondClientRequest(ctx context.Context, id string, resp models.ClientRequestResponse) (*models.ClientRequest, error)
}

// Notifier доставляет уведомления об исходе операций.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event) error
}

// RequestService реализует бизнес-логику клиентских заявок.
type RequestService struct {
	repo     RequestRepository
	notifier Notifier
	log      *slog.Logger
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(repo RequestRepository, notifier Notifier, log *slog.Logger) *RequestService {
	return &RequestService{repo: repo, notifier: notifier, log: log}
}

// Create сохраняет новую заявку в статусе pending. Категория должна принадлежать
// таблице выбранного типа заявки.
func (s *RequestService) Create(ctx context.Context, userID string, req models.DummyClientRequest) (*models.ClientRequest, error) {
	const op = "services.CreateClientRequest"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	if !catalog.HasRequestCategory(req.RequestType, req.Category) {
		return nil, ErrUnknownCategory
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	created, err := s.repo.CreateClientRequest(ctx, models.NewClientRequest{
		UserID:      userID,
		RequestType: req.RequestType,
		Category:    req.Category,
		Description: description,
	})
	if err != nil {
		log.Error("failed to create client request", sl.Err(err))
		s.notifyOwner(ctx, log, notify.Failure(rabbitmq.RoutingRequestCreated, userID,
			"Erreur lors de l'envoi de la demande"))
		return nil, err
	}

	metrics.ClientRequests.WithLabelValues(req.RequestType).Inc()
	log.Info("client request created", slog.String("id", created.ID), slog.String("category", req.Category))
	s.notifyOwner(ctx, log, notify.Success(rabbitmq.RoutingRequestCreated, userID,
		"Votre demande a été envoyée avec succès"))
	return created, nil
}

// List возвращает заявки пользователя, новые первыми.
func (s *RequestService) List(ctx context.Context, userID string) ([]models.ClientRequest, error) {
	return s.repo.ListClientRequests(ctx, userID)
}

// ListAll возвращает все заявки вместе с профилем автора.
func (s *RequestService) ListAll(ctx context.Context) ([]models.ClientRequestWithProfile, error) {
	return s.repo.ListAllClientRequests(ctx)
}

// Respond сохраняет статус и ответ администратора. Пустой ответ сохраняется как NULL.
func (s *RequestService) Respond(ctx context.Context, id, adminID string, req models.DummyClientRequestResponse) (*models.ClientRequest, error) {
	const op = "services.RespondClientRequest"
	if !status.IsRequestStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	resp := models.ClientRequestResponse{Status: req.Status}
	if text := strings.TrimSpace(req.AdminResponse); text != "" {
		resp.AdminResponse = &text
	}
	updated, err := s.repo.RespondClientRequest(ctx, id, resp)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	log := s.log.With(slog.String("op", op), slog.String("id", id))
	log.Info("client request answered", slog.String("status", req.Status), slog.String("admin", adminID))

	ev := notify.Success(rabbitmq.RoutingRequestUpdated, updated.UserID,
		"Statut de votre demande : "+status.Request(req.Status).Label)
	ev.Data = map[string]any{"request_id": id, "status": req.Status}
	s.notifyOwner(ctx, log, ev)
	return updated, nil
}

func (s *RequestService) notifyOwner(ctx context.Context, log *slog.Logger, ev notify.Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Warn("failed to deliver notification", slog.String("kind", ev.Kind), sl.Err(err))
	}
}
