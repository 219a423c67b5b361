// Package services хранит черновик мастера оформления между HTTP-запросами.
//
// Состояние wizard.State лежит в Redis и продлевается при каждом изменении.
// Черновик пользователя хранится под souscription:draft:{userID}, черновик
// анонимного посетителя под souscription:draft:anon:{draftID}. При первом
// обращении с сессией анонимный черновик переносится к пользователю.
// Отправка забирает черновик из Redis до записи подписки, поэтому одну и ту же
// форму нельзя отправить дважды.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deuxal/insurance-portal/internal/config"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// Группы чек-листов мастера.
const (
	GroupGuarantees = "guarantees"
	GroupCompanies  = "companies"
	GroupDurations  = "durations"
)

var (
	ErrDocumentTooLarge    = errors.New("Le fichier est trop volumineux")
	ErrUnsupportedDocument = errors.New("Formats acceptés : images ou PDF")
	ErrUnknownGroup        = errors.New("Groupe de sélection inconnu")
	ErrNoDraftOwner        = errors.New("draft owner is empty")
)

// Owner - владелец черновика: пользователь сессии и/или анонимный черновик.
type Owner struct {
	UserID  string
	DraftID string
}

func (o Owner) key() string {
	if o.UserID != "" {
		return "souscription:draft:" + o.UserID
	}
	return anonKey(o.DraftID)
}

func anonKey(draftID string) string {
	return "souscription:draft:anon:" + draftID
}

// Cache - хранилище черновиков.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Take(ctx context.Context, key string, result any) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// SubscriptionCreator сохраняет проверенную форму от имени пользователя.
type SubscriptionCreator interface {
	CreateSubscription(ctx context.Context, userID string, form wizard.Form) error
}

// SouscriptionService связывает wizard.Controller с черновиком в кэше.
type SouscriptionService struct {
	cache           Cache
	subs            SubscriptionCreator
	draftTTL        time.Duration
	maxDocumentSize int64
	log             *slog.Logger
}

// NewSouscriptionService создает новый экземпляр SouscriptionService.
func NewSouscriptionService(cache Cache, subs SubscriptionCreator, cfg config.Souscription, log *slog.Logger) *SouscriptionService {
	return &SouscriptionService{
		cache:           cache,
		subs:            subs,
		draftTTL:        cfg.DraftTTL,
		maxDocumentSize: cfg.MaxDocumentSize,
		log:             log,
	}
}

// adopt переносит анонимный черновик к пользователю, если у пользователя
// своего черновика ещё нет.
func (s *SouscriptionService) adopt(ctx context.Context, o Owner) error {
	const op = "services.souscription.adopt"
	if o.UserID == "" || o.DraftID == "" {
		return nil
	}
	var state wizard.State
	found, err := s.cache.Get(ctx, o.key(), &state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found {
		return nil
	}
	found, err = s.cache.Take(ctx, anonKey(o.DraftID), &state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil
	}
	if err = s.cache.Set(ctx, o.key(), state, s.draftTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("anonymous draft adopted", slog.String("op", op), sl.UserID(o.UserID))
	return nil
}

func (s *SouscriptionService) load(ctx context.Context, o Owner) (*wizard.Controller, error) {
	const op = "services.souscription.load"
	if o.UserID == "" && o.DraftID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoDraftOwner)
	}
	if err := s.adopt(ctx, o); err != nil {
		return nil, err
	}
	var state wizard.State
	found, err := s.cache.Get(ctx, o.key(), &state)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return wizard.New(), nil
	}
	return wizard.Restore(state), nil
}

func (s *SouscriptionService) save(ctx context.Context, o Owner, c *wizard.Controller) error {
	const op = "services.souscription.save"
	if err := s.cache.Set(ctx, o.key(), c.State(), s.draftTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// mutate загружает черновик, применяет fn и сохраняет результат.
func (s *SouscriptionService) mutate(ctx context.Context, o Owner, fn func(c *wizard.Controller) error) (wizard.StepView, error) {
	c, err := s.load(ctx, o)
	if err != nil {
		return wizard.StepView{}, err
	}
	if err = fn(c); err != nil {
		return c.View(), err
	}
	if err = s.save(ctx, o, c); err != nil {
		return wizard.StepView{}, err
	}
	return c.View(), nil
}

// View возвращает текущий шаг черновика.
func (s *SouscriptionService) View(ctx context.Context, o Owner) (wizard.StepView, error) {
	c, err := s.load(ctx, o)
	if err != nil {
		return wizard.StepView{}, err
	}
	return c.View(), nil
}

// Update меняет текстовые поля формы.
func (s *SouscriptionService) Update(ctx context.Context, o Owner, p wizard.Patch) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		c.Update(p)
		return nil
	})
}

// AttachDocument прикрепляет карту техпаспорта: изображение или PDF не больше лимита.
func (s *SouscriptionService) AttachDocument(ctx context.Context, o Owner, doc wizard.Document) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		if s.maxDocumentSize > 0 && int64(len(doc.Data)) > s.maxDocumentSize {
			return ErrDocumentTooLarge
		}
		if !AcceptedDocumentType(doc.ContentType) {
			return ErrUnsupportedDocument
		}
		c.AttachDocument(doc)
		return nil
	})
}

func (s *SouscriptionService) RemoveDocument(ctx context.Context, o Owner) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		c.RemoveDocument()
		return nil
	})
}

// Toggle отмечает или снимает пункт чек-листа. Попытки выйти за лимит или снять
// обязательную гарантию ничего не меняют и ошибкой не считаются.
func (s *SouscriptionService) Toggle(ctx context.Context, o Owner, group, code string, checked bool) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		switch group {
		case GroupGuarantees:
			c.ToggleGuarantee(code, checked)
		case GroupCompanies:
			c.ToggleCompany(code, checked)
		case GroupDurations:
			c.ToggleDuration(code, checked)
		default:
			return ErrUnknownGroup
		}
		return nil
	})
}

func (s *SouscriptionService) Next(ctx context.Context, o Owner) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		c.Next()
		return nil
	})
}

func (s *SouscriptionService) Prev(ctx context.Context, o Owner) (wizard.StepView, error) {
	return s.mutate(ctx, o, func(c *wizard.Controller) error {
		c.Prev()
		return nil
	})
}

// Submit проверяет и отправляет черновик пользователя сессии. Черновик забирается
// из Redis до записи подписки: при ошибке проверки он возвращается на шаг,
// которому принадлежит ошибка, при ошибке отправки возвращается нетронутым,
// при успехе больше не существует.
func (s *SouscriptionService) Submit(ctx context.Context, o Owner) (wizard.StepView, error) {
	const op = "services.souscription.Submit"
	log := s.log.With(slog.String("op", op), sl.UserID(o.UserID))

	if o.UserID == "" && o.DraftID == "" {
		return wizard.StepView{}, fmt.Errorf("%s: %w", op, ErrNoDraftOwner)
	}
	if err := s.adopt(ctx, o); err != nil {
		return wizard.StepView{}, err
	}

	c := wizard.New()
	var state wizard.State
	found, err := s.cache.Take(ctx, o.key(), &state)
	if err != nil {
		return wizard.StepView{}, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		c = wizard.Restore(state)
	}

	submitter := wizard.SubmitterFunc(func(ctx context.Context, form wizard.Form) error {
		return s.subs.CreateSubscription(ctx, o.UserID, form)
	})
	err = c.Submit(ctx, submitter)
	if err == nil {
		log.Info("subscription submitted")
		return c.View(), nil
	}

	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		log.Info("submission blocked by validation", slog.String("group", verr.Group), slog.Int("step", int(verr.Step)))
	} else {
		log.Warn("submission failed", sl.Err(err))
	}
	if found {
		if saveErr := s.save(ctx, o, c); saveErr != nil {
			log.Error("failed to restore draft", sl.Err(saveErr))
			return wizard.StepView{}, saveErr
		}
	}
	return c.View(), err
}

// Reset удаляет черновик и возвращает первый шаг пустой формы.
func (s *SouscriptionService) Reset(ctx context.Context, o Owner) (wizard.StepView, error) {
	if err := s.cache.Invalidate(ctx, o.key()); err != nil {
		return wizard.StepView{}, err
	}
	return wizard.New().View(), nil
}

// AcceptedDocumentType сообщает, что файл - изображение или PDF.
func AcceptedDocumentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return strings.HasPrefix(ct, "image/") || ct == "application/pdf"
}
