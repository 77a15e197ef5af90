package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"retail-dashboard/internal/api/models"
	"retail-dashboard/internal/logging"
	"retail-dashboard/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the analytics backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
	// Cache holds catalogue responses; nil disables caching.
	Cache *ResponseCache
}

// NewClient creates a backend client. If baseURL is empty, defaults to
// "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logging.OrNop(logger),
	}
}

// BackendError is a non-2xx answer from the backend.
type BackendError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a backend 404 (unknown product).
func IsNotFound(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.StatusCode == http.StatusNotFound
}

// Simulate runs one what-if scenario for a product.
func (c *Client) Simulate(ctx context.Context, req model.Request) (model.Result, error) {
	path := req.Path()
	if q := req.Query(); q != "" {
		path += "?" + q
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return model.DecodeResult(req.Type, body)
}

// SimulateStore runs a store-wide scenario. params are forwarded as query values.
func (c *Client) SimulateStore(ctx context.Context, scenario string, params map[string]string) (*models.StoreSimulationResponse, error) {
	q := url.Values{}
	q.Set("scenario", scenario)
	for k, v := range params {
		if k != "scenario" {
			q.Set(k, v)
		}
	}
	var out models.StoreSimulationResponse
	if err := c.getJSON(ctx, "/api/v1/simulator/all?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context) (*models.ProductListResponse, error) {
	var out models.ProductListResponse
	if err := c.cachedJSON(ctx, "/api/v1/products/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnalyzeProduct(ctx context.Context, product string) (*models.ProductAnalysisResponse, error) {
	if product == "" {
		return nil, model.ErrNoProduct
	}
	var out models.ProductAnalysisResponse
	if err := c.getJSON(ctx, "/api/v1/products/"+url.PathEscape(product)+"/analyze", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Insights(ctx context.Context) (*models.InsightsResponse, error) {
	var out models.InsightsResponse
	if err := c.cachedJSON(ctx, "/api/v1/products/insights", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CopilotQuery(ctx context.Context, query string) (*models.CopilotResponse, error) {
	raw, err := json.Marshal(models.CopilotQueryRequest{Query: query})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/copilot/query", "application/json", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	body, err := c.readOK(resp)
	if err != nil {
		return nil, err
	}
	var out models.CopilotResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func (c *Client) CopilotSuggestions(ctx context.Context) (*models.SuggestionsResponse, error) {
	var out models.SuggestionsResponse
	if err := c.cachedJSON(ctx, "/api/v1/copilot/suggestions", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadInventory posts a spreadsheet as the multipart field "file".
//
// Unlike the other calls, a non-2xx answer is not an error here: the backend
// reports validation failures (e.g. missing columns) in the body, so the
// decoded outcome is returned together with its status code. Transport
// failures and bodies that are not JSON, whatever their status, are errors.
func (c *Client) UploadInventory(ctx context.Context, filename, contentType string, content io.Reader) (model.UploadOutcome, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return model.UploadOutcome{}, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.UploadOutcome{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.UploadOutcome{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/upload_inventory", mw.FormDataContentType(), &buf)
	if err != nil {
		return model.UploadOutcome{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.UploadOutcome{}, fmt.Errorf("failed to read response: %w", err)
	}
	out := model.UploadOutcome{HTTPStatus: resp.StatusCode}
	if err := json.Unmarshal(body, &out.UploadResponse); err != nil {
		c.Logger.Warn("upload response is not JSON", zap.Int("status", resp.StatusCode))
		return model.UploadOutcome{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) cachedJSON(ctx context.Context, path string, out any) error {
	if body, ok := c.Cache.Get(path); ok {
		c.Logger.Debug("backend cache hit", zap.String("path", path))
		return json.Unmarshal(body, out)
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	c.Cache.Set(path, body)
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return c.readOK(resp)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	c.Logger.Debug("backend response",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))
	return resp, nil
}

// readOK drains and closes resp, mapping non-2xx codes to *BackendError.
func (c *Client) readOK(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, newBackendError(resp.StatusCode, body)
}

func newBackendError(status int, body []byte) *BackendError {
	e := &BackendError{
		StatusCode: status,
		Code:       codeForStatus(status),
		Message:    fmt.Sprintf("backend returned status %d", status),
	}
	var eb models.BackendErrorBody
	if json.Unmarshal(body, &eb) != nil {
		return e
	}
	switch d := eb.Detail.(type) {
	case string:
		if d != "" {
			e.Message = d
		}
	case nil:
	default:
		// FastAPI validation errors carry a list of objects.
		if raw, err := json.Marshal(d); err == nil {
			e.Message = string(raw)
		}
	}
	if eb.Error != "" && eb.Detail == nil {
		e.Message = eb.Error
	}
	return e
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_INPUT"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	default:
		if status >= 500 {
			return "BACKEND_ERROR"
		}
		return "API_ERROR"
	}
}
