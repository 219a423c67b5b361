// Package services содержит бизнес-логику подписок на автостраховку:
// загрузку карты техпаспорта, создание подписки, выборку и смену статуса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deuxal/insurance-portal/internal/lib/metrics"
	"github.com/deuxal/insurance-portal/internal/lib/rabbitmq"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/notify"
	"github.com/deuxal/insurance-portal/internal/objectstore"
	"github.com/deuxal/insurance-portal/internal/status"
	"github.com/deuxal/insurance-portal/internal/storage/repository"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// DocumentsPrefix - каталог карт техпаспорта в бакете.
const DocumentsPrefix = "carte-grise"

var (
	ErrUnauthenticated   = errors.New("Vous devez être connecté pour soumettre une souscription")
	ErrInvalidSeats      = errors.New("Nombre de places invalide")
	ErrInvalidHorsepower = errors.New("Puissance invalide")
	ErrNotFound          = errors.New("Souscription introuvable")
	ErrInvalidStatus     = errors.New("Statut invalide")
	ErrStatusUnchanged   = errors.New("Le statut n'a pas changé")
)

// UserError - ошибка, текст которой показывается пользователю как есть.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.NewSubscription) (string, error)
	ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error)
	ListAllSubscriptions(ctx context.Context) ([]models.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id string, upd models.SubscriptionStatusUpdate) (*models.Subscription, error)
}

// ObjectStore - файловое хранилище для карт техпаспорта.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, opts objectstore.UploadOptions) (string, error)
	PublicURL(bucket, path string) string
}

// Notifier доставляет уведомления об исходе операций.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo     SubscriptionRepository
	store    ObjectStore
	notifier Notifier
	bucket   string
	log      *slog.Logger
	now      func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, store ObjectStore, notifier Notifier, bucket string, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		store:    store,
		notifier: notifier,
		bucket:   bucket,
		log:      log,
		now:      time.Now,
	}
}

// UploadVehicleDocument сохраняет файл по пути carte-grise/{userID}-{unixMillis}.{ext}
// без перезаписи и возвращает его публичную ссылку.
func (s *SubscriptionService) UploadVehicleDocument(ctx context.Context, userID string, doc wizard.Document) (string, error) {
	const op = "services.UploadVehicleDocument"
	path := fmt.Sprintf("%s/%s-%d.%s", DocumentsPrefix, userID, s.now().UnixMilli(), extension(doc))

	_, err := s.store.Upload(ctx, s.bucket, path, doc.Data, objectstore.UploadOptions{
		ContentType:  doc.ContentType,
		CacheControl: time.Hour,
		Upsert:       false,
	})
	if err != nil {
		metrics.DocumentsUploaded.WithLabelValues(metrics.ResultFailure).Inc()
		s.log.Error("failed to upload vehicle document", slog.String("op", op), sl.UserID(userID), sl.Err(err))
		return "", &UserError{Message: "Erreur lors du téléchargement: " + describe(err), Err: err}
	}
	metrics.DocumentsUploaded.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.Info("vehicle document uploaded", slog.String("op", op), slog.String("path", path))
	return s.store.PublicURL(s.bucket, path), nil
}

// CreateSubscription загружает документ (если он есть) и вставляет одну строку подписки.
// Успех и ошибка сообщаются уведомлением; идентификатор новой записи не возвращается.
// Загруженный файл не удаляется, если вставка не удалась.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, userID string, form wizard.Form) error {
	const op = "services.CreateSubscription"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	err := s.createSubscription(ctx, userID, form, log)
	if err != nil {
		metrics.SubscriptionsSubmitted.WithLabelValues(metrics.ResultFailure).Inc()
		s.notifyOwner(ctx, log, notify.Failure(rabbitmq.RoutingSubscriptionFailed, userID, err.Error()))
		return err
	}
	metrics.SubscriptionsSubmitted.WithLabelValues(metrics.ResultSuccess).Inc()
	s.notifyOwner(ctx, log, notify.Success(rabbitmq.RoutingSubscriptionCreated, userID,
		"Votre souscription a été soumise avec succès !"))
	return nil
}

func (s *SubscriptionService) createSubscription(ctx context.Context, userID string, form wizard.Form, log *slog.Logger) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	seats, err := parseCount(form.Seats)
	if err != nil {
		return submitError(ErrInvalidSeats)
	}
	horsepower, err := parseCount(form.Horsepower)
	if err != nil {
		return submitError(ErrInvalidHorsepower)
	}

	var documentURL *string
	if form.Document != nil {
		url, err := s.UploadVehicleDocument(ctx, userID, *form.Document)
		if err != nil {
			return err
		}
		documentURL = &url
	}

	id, err := s.repo.CreateSubscription(ctx, models.NewSubscription{
		UserID:             userID,
		FirstName:          form.FirstName,
		LastName:           form.LastName,
		Phone:              form.Phone,
		Address:            form.Address,
		Energy:             form.Energy,
		Seats:              seats,
		Horsepower:         horsepower,
		CarteGriseURL:      documentURL,
		Guarantees:         form.Guarantees,
		InsuranceCompanies: form.InsuranceCompanies,
		ContractDurations:  form.ContractDurations,
	})
	if err != nil {
		log.Error("failed to insert subscription", sl.Err(err))
		return submitError(err)
	}
	log.Info("created new subscription", slog.String("id", id))
	return nil
}

// List возвращает подписки: все для администратора, иначе только собственные.
func (s *SubscriptionService) List(ctx context.Context, userID string, isAdmin bool) ([]models.Subscription, error) {
	if isAdmin {
		return s.repo.ListAllSubscriptions(ctx)
	}
	return s.repo.ListSubscriptions(ctx, userID)
}

// Get возвращает подписку. Чужая подписка для не-администратора выглядит как несуществующая.
func (s *SubscriptionService) Get(ctx context.Context, id, userID string, isAdmin bool) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !isAdmin && sub.UserID != userID {
		return nil, ErrNotFound
	}
	return sub, nil
}

// UpdateStatus меняет статус подписки от имени администратора. Пустой комментарий
// сохраняется как NULL; статус, совпадающий с текущим, отклоняется.
func (s *SubscriptionService) UpdateStatus(ctx context.Context, id, adminID, newStatus, comments string) (*models.Subscription, error) {
	const op = "services.UpdateStatus"
	if !status.IsSubscriptionStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	current, err := s.Get(ctx, id, adminID, true)
	if err != nil {
		return nil, err
	}
	if current.Status == newStatus {
		return nil, ErrStatusUnchanged
	}

	upd := models.SubscriptionStatusUpdate{Status: newStatus, UpdatedBy: adminID}
	if c := strings.TrimSpace(comments); c != "" {
		upd.AdminComments = &c
	}
	updated, err := s.repo.UpdateSubscriptionStatus(ctx, id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metrics.StatusChanges.WithLabelValues(newStatus).Inc()
	log := s.log.With(slog.String("op", op), slog.String("id", id))
	log.Info("subscription status updated",
		slog.String("from", current.Status), slog.String("to", newStatus), slog.String("admin", adminID))

	ev := notify.Success(rabbitmq.RoutingSubscriptionStatusUpdated, updated.UserID,
		"Statut de votre souscription : "+status.Subscription(newStatus).Label)
	ev.Data = map[string]any{"subscription_id": id, "status": newStatus}
	s.notifyOwner(ctx, log, ev)
	return updated, nil
}

func (s *SubscriptionService) notifyOwner(ctx context.Context, log *slog.Logger, ev notify.Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Warn("failed to deliver notification", slog.String("kind", ev.Kind), sl.Err(err))
	}
}

func submitError(err error) error {
	return &UserError{Message: "Erreur lors de la soumission: " + describe(err), Err: err}
}

// describe возвращает текст первопричины для показа пользователю.
func describe(err error) string {
	var apiErr *objectstore.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func parseCount(v string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(v))
}

// extension берёт расширение из имени файла, а при его отсутствии - из Content-Type.
func extension(doc wizard.Document) string {
	if ext := strings.TrimPrefix(filepath.Ext(doc.Name), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, _ := mime.ExtensionsByType(doc.ContentType); len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}
