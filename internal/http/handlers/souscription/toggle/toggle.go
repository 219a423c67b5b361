// Package toggle отмечает или снимает пункт чек-листа мастера:
// гарантию, страховую компанию или срок договора.
package toggle

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// Request - новое состояние пункта.
type Request struct {
	Checked *bool `json:"checked" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Toggle(ctx context.Context, o draftservices.Owner, group, code string, checked bool) (wizard.StepView, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Cocher ou décocher une option
// @Tags Souscription
// @Accept json
// @Produce json
// @Param group path string true "guarantees, companies ou durations"
// @Param code path string true "Code de l'option"
// @Param request body Request true "État"
// @Success 200 {object} response.Response
// @Router /souscription/{group}/{code} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.toggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner := souscription.Owner(w, r)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	group, code := chi.URLParam(r, "group"), chi.URLParam(r, "code")
	view, err := h.service.Toggle(r.Context(), owner, group, code, *req.Checked)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}
	log.Debug("option toggled", slog.String("group", group), slog.String("code", code), slog.Bool("checked", *req.Checked))
	souscription.WriteView(w, r, view)
}
