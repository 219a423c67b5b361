// Package services реализует просмотр карт техпаспорта в хранилище для администратора:
// список с привязкой к подпискам, скачивание и удаление.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/objectstore"
)

const (
	// Prefix - каталог карт техпаспорта в бакете.
	Prefix = "carte-grise"
	// ListLimit - сколько объектов запрашивается за раз.
	ListLimit = 100
)

var (
	ErrInvalidName = errors.New("Nom de fichier invalide")
	ErrNotFound    = errors.New("Document introuvable")
)

// ObjectStore - операции файлового хранилища, нужные админке.
type ObjectStore interface {
	List(ctx context.Context, bucket string, opts objectstore.ListOptions) ([]models.StoredObject, error)
	Download(ctx context.Context, bucket, path string) ([]byte, string, error)
	Remove(ctx context.Context, bucket string, paths ...string) error
	PublicURL(bucket, path string) string
}

// RefRepository возвращает подписки со ссылкой на документ.
type RefRepository interface {
	ListSubscriptionDocumentRefs(ctx context.Context) ([]models.SubscriptionDocumentRef, error)
}

// DocumentService связывает объекты хранилища с подписками.
type DocumentService struct {
	store  ObjectStore
	repo   RefRepository
	bucket string
	log    *slog.Logger
}

// NewDocumentService создает новый экземпляр DocumentService.
func NewDocumentService(store ObjectStore, repo RefRepository, bucket string, log *slog.Logger) *DocumentService {
	return &DocumentService{store: store, repo: repo, bucket: bucket, log: log}
}

// List возвращает документы, новые первыми. Подписка подбирается по вхождению
// имени файла в её ссылку на документ.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	objects, err := s.store.List(ctx, s.bucket, objectstore.ListOptions{Prefix: Prefix, Limit: ListLimit})
	if err != nil {
		return nil, err
	}
	refs, err := s.repo.ListSubscriptionDocumentRefs(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == "" || strings.HasPrefix(obj.Name, ".") {
			continue
		}
		doc := models.Document{
			Object:    obj,
			PublicURL: s.store.PublicURL(s.bucket, Prefix+"/"+obj.Name),
		}
		for i := range refs {
			if strings.Contains(refs[i].CarteGriseURL, obj.Name) {
				ref := refs[i]
				doc.Subscription = &ref
				break
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Download возвращает содержимое документа и его Content-Type.
func (s *DocumentService) Download(ctx context.Context, name string) ([]byte, string, error) {
	if !validName(name) {
		return nil, "", ErrInvalidName
	}
	data, contentType, err := s.store.Download(ctx, s.bucket, Prefix+"/"+name)
	if errors.Is(err, objectstore.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// Delete удаляет документ и возвращает обновлённый список.
// Ссылка в подписке остаётся прежней.
func (s *DocumentService) Delete(ctx context.Context, name, adminID string) ([]models.Document, error) {
	const op = "services.DeleteDocument"
	if !validName(name) {
		return nil, ErrInvalidName
	}
	if err := s.store.Remove(ctx, s.bucket, Prefix+"/"+name); err != nil {
		s.log.Error("failed to remove document", slog.String("op", op), slog.String("name", name), sl.Err(err))
		return nil, err
	}
	s.log.Info("document removed", slog.String("op", op), slog.String("name", name), slog.String("admin", adminID))
	return s.List(ctx)
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
