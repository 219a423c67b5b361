// Package document прикрепляет к черновику карту техпаспорта (PUT, multipart-поле file)
// и открепляет её (DELETE).
package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/http/handlers/souscription"
	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

// FormField - имя multipart-поля с файлом.
const FormField = "file"

type Handler struct {
	log     *slog.Logger
	service Service
	maxSize int64
}

type Service interface {
	AttachDocument(ctx context.Context, o draftservices.Owner, doc wizard.Document) (wizard.StepView, error)
	RemoveDocument(ctx context.Context, o draftservices.Owner) (wizard.StepView, error)
}

// New создаёт обработчик; maxSize - лимит размера файла в байтах.
func New(log *slog.Logger, service Service, maxSize int64) *Handler {
	return &Handler{log: log, service: service, maxSize: maxSize}
}

// ServeHTTP godoc
// @Summary Joindre ou retirer la carte grise
// @Description PUT: multipart, champ "file" (image ou PDF). DELETE: retire le fichier.
// @Tags Souscription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Carte grise"
// @Success 200 {object} response.Response
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Router /souscription/document [put]
// @Router /souscription/document [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.souscription.document"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	owner := souscription.Owner(w, r)

	if r.Method == http.MethodDelete {
		view, err := h.service.RemoveDocument(r.Context(), owner)
		if err != nil {
			souscription.WriteError(w, r, log, view, err)
			return
		}
		log.Info("document removed from draft")
		souscription.WriteView(w, r, view)
		return
	}

	doc, err := h.readDocument(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			souscription.WriteError(w, r, log, wizard.StepView{}, draftservices.ErrDocumentTooLarge)
			return
		}
		log.Error("failed to read uploaded file", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Veuillez joindre un fichier"))
		return
	}

	view, err := h.service.AttachDocument(r.Context(), owner, doc)
	if err != nil {
		souscription.WriteError(w, r, log, view, err)
		return
	}
	log.Info("document attached to draft", slog.String("name", doc.Name), slog.Int("size", len(doc.Data)))
	souscription.WriteView(w, r, view)
}

func (h *Handler) readDocument(w http.ResponseWriter, r *http.Request) (wizard.Document, error) {
	if h.maxSize > 0 {
		// запас на заголовки multipart
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	}
	file, header, err := r.FormFile(FormField)
	if err != nil {
		return wizard.Document{}, err
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return wizard.Document{}, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return wizard.Document{Name: header.Filename, ContentType: contentType, Data: data}, nil
}
