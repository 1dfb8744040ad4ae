package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"telekom-gateway/internal/config"
	"telekom-gateway/internal/session"
	"telekom-gateway/internal/utils"
	"telekom-gateway/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

// Gateway owns the single outbound channel to the backend. Every call goes
// through one credential injection and one error normalization.
type Gateway struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	session    *session.Context
}

type Option func(*Gateway)

// WithTimeout bounds each request. Zero, the default, waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithHTTPClient replaces the transport; WithTimeout is then ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

func New(baseURL string, sess *session.Context, opts ...Option) *Gateway {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if sess == nil {
		sess = session.NewContext(nil)
	}

	g := &Gateway{
		baseURL: baseURL,
		session: sess,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.httpClient == nil {
		g.httpClient = utils.NewHTTPClient(g.timeout)
	}

	timeout := "unbounded"
	if g.httpClient.Timeout > 0 {
		timeout = g.httpClient.Timeout.String()
	}
	logger.Infof("API base URL: %s, timeout: %s", g.baseURL, timeout)

	return g
}

func NewFromConfig(cfg config.GatewayConfig, sess *session.Context) *Gateway {
	return New(cfg.BaseURL, sess, WithTimeout(cfg.Timeout))
}

func (g *Gateway) BaseURL() string {
	return g.baseURL
}

func (g *Gateway) Session() *session.Context {
	return g.session
}

// Do sends req and returns the response body verbatim on 2xx. Any failure is
// returned as *Error.
func (g *Gateway) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	requestID := uuid.NewString()
	trace := logger.WithFields(logger.Fields{
		"request_id": requestID,
		"method":     req.Method,
		"path":       req.Path,
	})

	// One read serves both the header and the body convention.
	token, hasToken := g.session.Credential()

	body, err := encodeBody(req, token, hasToken)
	if err != nil {
		return nil, g.fail(trace, &Error{Kind: KindOther, Message: MsgFallback, cause: err})
	}

	httpReq, err := g.newHTTPRequest(ctx, req, body)
	if err != nil {
		return nil, g.fail(trace, &Error{Kind: KindOther, Message: MsgFallback, cause: err})
	}
	httpReq.Header.Set(HeaderRequestID, requestID)
	injectCredential(httpReq, token, hasToken)

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, g.fail(trace, networkError(err))
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(resp.Body)
	trace = trace.WithField("status", resp.StatusCode).WithField("elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, g.fail(trace, classifyStatus(resp.StatusCode, payload))
	}
	if readErr != nil {
		return nil, g.fail(trace, networkError(readErr))
	}

	trace.Debug("request completed")
	if len(payload) == 0 {
		return nil, nil
	}
	return json.RawMessage(payload), nil
}

func (g *Gateway) fail(trace *logrus.Entry, gwErr *Error) error {
	entry := trace.WithField("kind", string(gwErr.Kind))
	if gwErr.cause != nil {
		entry = entry.WithError(gwErr.cause)
	}
	entry.Warn(gwErr.Message)
	return gwErr
}

func (g *Gateway) newHTTPRequest(ctx context.Context, req Request, body []byte) (*http.Request, error) {
	target := g.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

// injectCredential attaches the bearer header when a credential exists. A
// missing credential is not an error here; the backend answers 401.
func injectCredential(httpReq *http.Request, token string, ok bool) {
	if ok {
		httpReq.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
}

// encodeBody marshals the request body and, for EmbedSession requests,
// writes the credential into it as "session_token" (null when absent).
func encodeBody(req Request, token string, hasToken bool) ([]byte, error) {
	if !req.EmbedSession {
		if req.Body == nil {
			return nil, nil
		}
		return json.Marshal(req.Body)
	}

	fields := map[string]json.RawMessage{}
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("session body must be a JSON object: %w", err)
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
	}

	fields[session.TokenKey] = json.RawMessage("null")
	if hasToken {
		encoded, err := json.Marshal(token)
		if err != nil {
			return nil, err
		}
		fields[session.TokenKey] = encoded
	}
	return json.Marshal(fields)
}
