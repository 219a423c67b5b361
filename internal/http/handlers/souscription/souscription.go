// Package souscription содержит общие для обработчиков мастера функции:
// ответ с текущим шагом и отображение ошибок мастера в HTTP-статусы.
package souscription

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	subservices "github.com/deuxal/insurance-portal/internal/services/subscription"
	"github.com/deuxal/insurance-portal/internal/session"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// UserID достаёт пользователя сессии или отвечает 401.
func UserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		log.Error("session not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(subservices.ErrUnauthenticated.Error()))
		return "", false
	}
	return s.UserID, true
}

// Анонимный черновик передаётся заголовком DraftHeader или cookie DraftCookie.
const (
	DraftHeader = "X-Draft-ID"
	DraftCookie = "souscription_draft"
)

// Owner определяет владельца черновика. Мастер открыт без входа: посетителю без
// сессии и без черновика выдаётся новый идентификатор, он возвращается в
// заголовке и в cookie.
func Owner(w http.ResponseWriter, r *http.Request) draftservices.Owner {
	o := draftservices.Owner{DraftID: draftID(r)}
	if s, err := session.FromContext(r.Context()); err == nil {
		o.UserID = s.UserID
	}
	if o.UserID == "" && o.DraftID == "" {
		o.DraftID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     DraftCookie,
			Value:    o.DraftID,
			Path:     "/api/v1/souscription",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if o.DraftID != "" {
		w.Header().Set(DraftHeader, o.DraftID)
	}
	return o
}

// draftID читает идентификатор черновика; значения не в формате UUID игнорируются.
func draftID(r *http.Request) string {
	id := r.Header.Get(DraftHeader)
	if id == "" {
		if c, err := r.Cookie(DraftCookie); err == nil {
			id = c.Value
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// WriteView отвечает текущим шагом мастера.
func WriteView(w http.ResponseWriter, r *http.Request, view wizard.StepView) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"step": view,
	}))
}

// WriteError отвечает ошибкой мастера. Если шаг известен, он передаётся клиенту,
// чтобы тот показал форму на нужном шаге с сохранёнными данными.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, view wizard.StepView, err error) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		log.Error("souscription request failed", sl.Err(err))
	} else {
		log.Warn("souscription request rejected", sl.Err(err))
	}

	render.Status(r, code)
	data := map[string]any{}
	if view.Number > 0 {
		data["step"] = view
	}
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		data["group"] = verr.Group
	}
	if len(data) == 0 {
		render.JSON(w, r, response.Error(msg))
		return
	}
	render.JSON(w, r, response.ErrorWithData(msg, data))
}

func classify(err error) (int, string) {
	var verr *wizard.ValidationError
	var uerr *subservices.UserError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Message
	case errors.Is(err, subservices.ErrInvalidSeats), errors.Is(err, subservices.ErrInvalidHorsepower):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, wizard.ErrNotOnVerification):
		return http.StatusConflict, "La soumission n'est possible qu'à l'étape de vérification"
	case errors.Is(err, subservices.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, draftservices.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, draftservices.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, draftservices.ErrUnknownGroup):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &uerr):
		return http.StatusBadGateway, uerr.Message
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
