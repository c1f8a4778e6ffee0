// Package transport performs outbound HTTP calls against one base URL
// and maps every outcome onto a small error taxonomy.
//
// A Dispatcher bound to a Credentials source attaches the current
// bearer token at dispatch time, never a copy captured earlier, so a
// request racing a logout can only ever see the post-logout truth. An
// unbound Dispatcher is the unauthenticated channel used for the
// analyzer service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Credentials is the dispatcher's view of the session manager: the
// single source of token truth, and the hook to fire when the backend
// declares the session dead.
type Credentials interface {
	// Token returns the current bearer token, or "" when unauthenticated.
	Token() string

	// Invalidate marks the session expired. Implementations coalesce
	// concurrent calls into a single state transition.
	Invalidate()
}

// Dispatcher performs HTTP calls against a single base URL.
type Dispatcher struct {
	baseURL  string
	client   *http.Client
	uploader *http.Client
	creds    Credentials
	log      zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		d.client = c
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithTimeout sets the underlying client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.client.Timeout = timeout
	}
}

// WithUploadTimeout sets the timeout for requests marked Upload.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.uploader.Timeout = timeout
	}
}

// New creates a Dispatcher for the given base URL. The dispatcher
// starts unbound; call Bind once the session manager exists.
func New(baseURL string, opts ...Option) (*Dispatcher, error) {
	if baseURL == "" {
		return nil, errors.New("[transport.New] baseURL is required")
	}

	d := &Dispatcher{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
		uploader: &http.Client{Timeout: 5 * time.Minute},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Bind attaches the credentials source. Dispatchers for services that
// never authenticate (the analyzer) are simply never bound.
func (d *Dispatcher) Bind(creds Credentials) {
	d.creds = creds
}

// Do performs the request and returns the raw JSON body of a 2xx
// answer unchanged. Response shape validation belongs to the feature
// clients, not here.
func (d *Dispatcher) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := d.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// DoBytes performs the request and returns the response body as an
// opaque byte sequence, for binary payloads such as heatmap images.
func (d *Dispatcher) DoBytes(ctx context.Context, req Request) ([]byte, error) {
	return d.execute(ctx, req)
}

func (d *Dispatcher) execute(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := d.build(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	client := d.client
	if req.Upload {
		client = d.uploader
	}

	started := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ErrCancelled, req.Path)
		}
		d.log.Warn().Str("request_id", requestID).Str("method", req.Method).
			Str("path", req.Path).Err(err).Msg("transport failure")
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ErrCancelled, req.Path)
		}
		return nil, &TransientError{Err: err}
	}

	d.log.Debug().Str("request_id", requestID).Str("method", req.Method).
		Str("path", req.Path).Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).Msg("request complete")

	return d.classify(req, resp.StatusCode, payload)
}

func (d *Dispatcher) build(ctx context.Context, req Request) (*http.Request, error) {
	target := d.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case len(req.Parts) > 0:
		encoded, boundary, err := encodeMultipart(req.Parts)
		if err != nil {
			return nil, err
		}
		body = encoded
		contentType = "multipart/form-data; boundary=" + boundary
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Dispatcher] marshal body")
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Dispatcher] build request")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Token freshness: read from the session manager at dispatch time.
	if req.RequiresAuth && d.creds != nil {
		if token := d.creds.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

func (d *Dispatcher) classify(req Request, status int, payload []byte) ([]byte, error) {
	switch {
	case status >= 200 && status < 300:
		return payload, nil

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// No retry with a known-bad token, and no silent refresh: the
		// backend does not guarantee a refresh endpoint for every session.
		if req.RequiresAuth && d.creds != nil {
			d.creds.Invalidate()
		}
		return nil, ErrUnauthorized

	case status >= 400 && status < 500:
		return nil, &RejectedError{Status: status, Message: serverMessage(payload)}

	default:
		return nil, &TransientError{Err: errors.Errorf("server returned status %d", status)}
	}
}

// serverMessage pulls the conventional detail field out of an error
// body. FastAPI uses "detail"; the rest of the backend uses "message".
func serverMessage(payload []byte) string {
	var probe struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return ""
	}

	if len(probe.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(probe.Detail, &detail); err == nil {
			return detail
		}
		// Validation errors arrive as structured detail; pass them
		// through as-is rather than dropping them.
		return string(probe.Detail)
	}
	if probe.Message != "" {
		return probe.Message
	}
	return probe.Error
}
