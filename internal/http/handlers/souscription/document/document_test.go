package document

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	draftservices "github.com/deuxal/insurance-portal/internal/services/souscription"
	"github.com/deuxal/insurance-portal/internal/session"
	"github.com/deuxal/insurance-portal/internal/wizard"
)

type DraftServiceMock struct {
	mock.Mock
}

var user1 = draftservices.Owner{UserID: "u1"}

func (m *DraftServiceMock) AttachDocument(ctx context.Context, o draftservices.Owner, doc wizard.Document) (wizard.StepView, error) {
	args := m.Called(ctx, o, doc)
	return args.Get(0).(wizard.StepView), args.Error(1)
}

func (m *DraftServiceMock) RemoveDocument(ctx context.Context, o draftservices.Owner) (wizard.StepView, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(wizard.StepView), args.Error(1)
}

func multipartBody(t *testing.T, field, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func serve(h *Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	req = req.WithContext(session.WithSession(req.Context(), session.Session{UserID: "u1"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var got map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&got)
	return rec, got
}

func TestDocumentHandler_Attach(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	view := wizard.Render(wizard.State{Step: wizard.StepVehicleInfo, Form: wizard.NewForm()})
	data := []byte("%PDF-1.4 carte grise")

	m := new(DraftServiceMock)
	m.On("AttachDocument", mock.Anything, user1, wizard.Document{
		Name:        "carte.pdf",
		ContentType: "application/pdf",
		Data:        data,
	}).Return(view, nil).Once()

	body, ct := multipartBody(t, FormField, "carte.pdf", "application/pdf", data)
	req := httptest.NewRequest(http.MethodPut, "/souscription/document", body)
	req.Header.Set("Content-Type", ct)

	rec, got := serve(New(log, m, 1<<20), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", got["status"])
	m.AssertExpectations(t)
}

func TestDocumentHandler_AttachDetectsContentType(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	png := []byte("\x89PNG\r\n\x1a\n0000")

	m := new(DraftServiceMock)
	m.On("AttachDocument", mock.Anything, user1, mock.MatchedBy(func(d wizard.Document) bool {
		return d.ContentType == "image/png" && d.Name == "cg.png"
	})).Return(wizard.StepView{Number: 2}, nil).Once()

	body, ct := multipartBody(t, FormField, "cg.png", "application/octet-stream", png)
	req := httptest.NewRequest(http.MethodPut, "/souscription/document", body)
	req.Header.Set("Content-Type", ct)

	rec, _ := serve(New(log, m, 1<<20), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.AssertExpectations(t)
}

func TestDocumentHandler_AttachErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("missing file field", func(t *testing.T) {
		m := new(DraftServiceMock)
		body, ct := multipartBody(t, "other", "carte.pdf", "application/pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPut, "/souscription/document", body)
		req.Header.Set("Content-Type", ct)

		rec, got := serve(New(log, m, 1<<20), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Veuillez joindre un fichier", got["error"])
		m.AssertNotCalled(t, "AttachDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported type", func(t *testing.T) {
		m := new(DraftServiceMock)
		m.On("AttachDocument", mock.Anything, user1, mock.Anything).
			Return(wizard.StepView{}, draftservices.ErrUnsupportedDocument).Once()
		body, ct := multipartBody(t, FormField, "notes.txt", "text/plain", []byte("hello"))
		req := httptest.NewRequest(http.MethodPut, "/souscription/document", body)
		req.Header.Set("Content-Type", ct)

		rec, got := serve(New(log, m, 1<<20), req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "Formats acceptés : images ou PDF", got["error"])
	})

	t.Run("body over limit", func(t *testing.T) {
		m := new(DraftServiceMock)
		big := bytes.Repeat([]byte("a"), 3<<20)
		body, ct := multipartBody(t, FormField, "big.pdf", "application/pdf", big)
		req := httptest.NewRequest(http.MethodPut, "/souscription/document", body)
		req.Header.Set("Content-Type", ct)

		rec, _ := serve(New(log, m, 1<<20), req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		m.AssertNotCalled(t, "AttachDocument", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentHandler_Remove(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := new(DraftServiceMock)
	m.On("RemoveDocument", mock.Anything, user1).Return(wizard.StepView{Number: 2}, nil).Once()

	rec, got := serve(New(log, m, 1<<20), httptest.NewRequest(http.MethodDelete, "/souscription/document", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", got["status"])
	m.AssertExpectations(t)
}
