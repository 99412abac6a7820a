package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"docsum/internal/config"
	"docsum/internal/model"
)

// Ensure HTTPGateway implements the interface.
var _ Gateway = (*HTTPGateway)(nil)

const (
	opSubmit    = "submit-document"
	opList      = "list-documents"
	opGet       = "get-document"
	opDelete    = "delete-document"
	opDeleteAll = "delete-all"
	opAsk       = "ask-assistant"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// HTTPGateway talks to the summarizer service over HTTP.
// It is safe for concurrent use by multiple goroutines.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger
}

// Option customises an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) {
		g.client = c
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *HTTPGateway) {
		g.log = l
	}
}

// NewHTTP creates a gateway for the service at cfg.BaseURL.
func NewHTTP(cfg config.ClientConfig, opts ...Option) (*HTTPGateway, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("gateway: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("gateway: invalid base url: %w", err)
	}

	g := &HTTPGateway{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: base,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SubmitDocument posts the file as multipart field "file" to /summarize.
func (g *HTTPGateway) SubmitDocument(ctx context.Context, content []byte, filename string) (*model.Document, error) {
	if len(content) == 0 {
		return nil, ErrEmptyContent
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%s: build form: %w", opSubmit, err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("%s: build form: %w", opSubmit, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: build form: %w", opSubmit, err)
	}

	var doc model.Document
	if err := g.do(ctx, opSubmit, http.MethodPost, "/summarize", writer.FormDataContentType(), body, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, &Error{Op: opSubmit, Kind: KindServerRejected, Message: "response has no document id"}
	}
	return &doc, nil
}

// ListDocuments fetches /files.
func (g *HTTPGateway) ListDocuments(ctx context.Context) ([]model.Document, error) {
	docs := make([]model.Document, 0)
	if err := g.do(ctx, opList, http.MethodGet, "/files", "", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument fetches /file/{id}.
func (g *HTTPGateway) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	if err := g.do(ctx, opGet, http.MethodGet, "/file/"+url.PathEscape(id), "", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument issues DELETE /file/{id}.
func (g *HTTPGateway) DeleteDocument(ctx context.Context, id string) error {
	return g.do(ctx, opDelete, http.MethodDelete, "/file/"+url.PathEscape(id), "", nil, nil)
}

// DeleteAllDocuments issues DELETE /files.
func (g *HTTPGateway) DeleteAllDocuments(ctx context.Context) error {
	return g.do(ctx, opDeleteAll, http.MethodDelete, "/files", "", nil, nil)
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Response string `json:"response"`
}

// AskAssistant posts {prompt} to /ask.
func (g *HTTPGateway) AskAssistant(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	jsonBody, err := json.Marshal(askRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%s: marshal request: %w", opAsk, err)
	}

	var res askResponse
	if err := g.do(ctx, opAsk, http.MethodPost, "/ask", "application/json", bytes.NewReader(jsonBody), &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// errorBody mirrors the service's error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs one request and decodes a 2xx JSON body into out (when out is non-nil).
func (g *HTTPGateway) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Debug("gateway_call_failed", zap.String("op", op), zap.Error(err), zap.Duration("latency", time.Since(start)))
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	g.log.Debug("gateway_call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTransportError(ctx, err) {
			return &Error{Op: op, Kind: KindNetwork, Err: err}
		}
		return &Error{Op: op, Kind: KindServerRejected, Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	kind := KindServerRejected
	if resp.StatusCode == http.StatusNotFound && (op == opGet || op == opDelete) {
		kind = KindNotFound
	}

	e := &Error{Op: op, Kind: kind, Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return e
	}
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error.Message != "" {
		e.Message = eb.Error.Message
	} else if s := strings.TrimSpace(string(raw)); s != "" && len(s) < 200 {
		e.Message = s
	}
	return e
}

// isTransportError distinguishes a body cut off by a timeout or cancellation from a malformed payload.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
