package objectstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "anon-key").WithHTTPClient(srv.Client())
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/documents/carte-grise/u1-1700000000000.pdf", r.URL.Path)
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "false", r.Header.Get("x-upsert"))
		assert.Equal(t, "max-age=3600", r.Header.Get("cache-control"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "%PDF", string(body))

		_, _ = w.Write([]byte(`{"Key":"documents/carte-grise/u1-1700000000000.pdf"}`))
	})

	key, err := c.Upload(context.Background(), "documents", "carte-grise/u1-1700000000000.pdf", []byte("%PDF"),
		UploadOptions{ContentType: "application/pdf", CacheControl: time.Hour})

	require.NoError(t, err)
	assert.Equal(t, "documents/carte-grise/u1-1700000000000.pdf", key)
}

func TestUpload_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	})

	_, err := c.Upload(context.Background(), "documents", "a.pdf", []byte("x"), UploadOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "The resource already exists", apiErr.Message)
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/list/documents", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "carte-grise", body["prefix"])
		assert.EqualValues(t, 100, body["limit"])

		_, _ = w.Write([]byte(`[{"id":"1","name":"u1-1.pdf","created_at":"2026-01-02T10:00:00Z","updated_at":"2026-01-02T10:00:00Z","metadata":{"size":4}}]`))
	})

	objs, err := c.List(context.Background(), "documents", ListOptions{Prefix: "carte-grise", Limit: 100})

	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "u1-1.pdf", objs[0].Name)
	assert.EqualValues(t, 4, objs[0].Metadata["size"])
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/storage/v1/object/documents/carte-grise/missing.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	})

	data, ct, err := c.Download(context.Background(), "documents", "carte-grise/a.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "image/png", ct)

	_, _, err = c.Download(context.Background(), "documents", "carte-grise/missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/documents", r.URL.Path)
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"carte-grise/a.pdf"}, body["prefixes"])
		_, _ = w.Write([]byte(`[]`))
	})

	require.NoError(t, c.Remove(context.Background(), "documents", "carte-grise/a.pdf"))
}

func TestPublicURL(t *testing.T) {
	c := NewClient("https://project.supabase.co/", "k")
	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/documents/carte-grise/u1-1.pdf",
		c.PublicURL("documents", "carte-grise/u1-1.pdf"))
}
