// Package objectstore - клиент REST API файлового хранилища управляемого бэкенда.
// Используется только для карт техпаспорта (carte grise).
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/deuxal/insurance-portal/internal/models"
)

// ErrNotFound возвращается, если объекта нет в хранилище.
var ErrNotFound = errors.New("object not found")

// APIError - ответ хранилища с кодом, отличным от 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storage responded with status %d", e.StatusCode)
	}
	return e.Message
}

// UploadOptions - параметры загрузки объекта.
type UploadOptions struct {
	ContentType  string
	CacheControl time.Duration
	Upsert       bool
}

// Client работает с одним проектом бэкенда от имени публичного ключа.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт клиент хранилища проекта baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient заменяет HTTP-клиент, например в тестах.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/storage/v1"+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("apikey", c.apiKey)
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и декодирует JSON-ответ в out, если out не nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	var payload struct {
		StatusCode string `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &payload)

	if resp.StatusCode == http.StatusNotFound || payload.StatusCode == "404" {
		return ErrNotFound
	}
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func objectPath(bucket, path string) string {
	return "/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func escapePath(path string) string {
	parts := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Upload загружает data по пути path и возвращает ключ объекта.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, opts UploadOptions) (string, error) {
	const op = "objectstore.Upload"
	req, err := c.newRequest(ctx, http.MethodPost, "/object"+objectPath(bucket, path), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", strconv.FormatBool(opts.Upsert))
	if opts.CacheControl > 0 {
		req.Header.Set("cache-control", "max-age="+strconv.Itoa(int(opts.CacheControl.Seconds())))
	}

	var out struct {
		Key string `json:"Key"`
	}
	if err = c.do(req, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out.Key, nil
}

// ListOptions - параметры листинга объектов.
type ListOptions struct {
	Prefix string
	Limit  int
	Offset int
}

// List возвращает объекты бакета, новые первыми.
func (c *Client) List(ctx context.Context, bucket string, opts ListOptions) ([]models.StoredObject, error) {
	const op = "objectstore.List"
	body := map[string]any{
		"prefix": opts.Prefix,
		"limit":  opts.Limit,
		"offset": opts.Offset,
		"sortBy": map[string]string{"column": "created_at", "order": "desc"},
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/object/list/"+url.PathEscape(bucket), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var objects []models.StoredObject
	if err = c.do(req, &objects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if objects == nil {
		objects = []models.StoredObject{}
	}
	return objects, nil
}

// Download возвращает содержимое объекта и его Content-Type.
func (c *Client) Download(ctx context.Context, bucket, path string) ([]byte, string, error) {
	const op = "objectstore.Download"
	req, err := c.newRequest(ctx, http.MethodGet, "/object"+objectPath(bucket, path), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("%s: %w", op, readAPIError(resp))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Remove удаляет объекты по путям.
func (c *Client) Remove(ctx context.Context, bucket string, paths ...string) error {
	const op = "objectstore.Remove"
	req, err := c.newJSONRequest(ctx, http.MethodDelete, "/object/"+url.PathEscape(bucket),
		map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PublicURL возвращает публичную ссылку на объект. Сетевого запроса не выполняет.
func (c *Client) PublicURL(bucket, path string) string {
	return c.baseURL + "/storage/v1/object/public" + objectPath(bucket, path)
}
