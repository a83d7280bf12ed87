// Package rest speaks the repository contract over the HTTP API. It backs
// the interactive console, which runs against a live server instead of a
// database. HTTP failures are folded back into the typed repository errors
// so callers cannot tell the profiles apart.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/courseval/courseval-backend/internal/model"
	"github.com/courseval/courseval-backend/internal/repository"
	"github.com/courseval/courseval-backend/internal/session"
)

const requestTimeout = 15 * time.Second

// Client is an HTTP client for the course evaluation API. TokenFunc supplies
// the bearer token per request; it may return "" for anonymous calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokenFunc  func() string
	log        zerolog.Logger
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, tokenFunc func() string, log zerolog.Logger) *Client {
	if tokenFunc == nil {
		tokenFunc = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		tokenFunc:  tokenFunc,
		log:        log.With().Str("component", "rest_client").Logger(),
	}
}

// Courses returns the course repository view.
func (c *Client) Courses() repository.CourseRepository { return &CourseRepository{c: c} }

// Evaluations returns the evaluation repository view.
func (c *Client) Evaluations() repository.EvaluationRepository { return &EvaluationRepository{c: c} }

// envelope mirrors the server's response shape.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// do issues a request and decodes the envelope's data into out (when out is
// non-nil). Non-2xx statuses come back as typed repository errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokenFunc(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return repository.ErrUnavailable
		}
		c.log.Debug().Err(err).Str("path", path).Msg("request failed")
		return repository.ErrUnavailable
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 500 {
			return repository.ErrUnavailable
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return translateStatus(resp.StatusCode, env.Error)
	}

	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// translateStatus maps an HTTP error onto the repository error taxonomy.
// Conflict messages travel verbatim so the UI can show the server's reason.
func translateStatus(status int, e *envelopeError) error {
	msg := ""
	if e != nil {
		msg = e.Message
	}

	switch {
	case status == http.StatusNotFound:
		return repository.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return repository.ErrUnauthorized
	case status == http.StatusConflict:
		if msg == "" {
			msg = "resource is referenced by other data"
		}
		return &repository.ConflictError{Reason: msg}
	case status == http.StatusBadRequest:
		fields := map[string]string{}
		if e != nil && len(e.Fields) > 0 {
			fields = e.Fields
		}
		return &repository.ValidationError{Fields: fields}
	case status >= 500 || status == http.StatusTooManyRequests:
		return repository.ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d: %s", status, msg)
	}
}

// loginResponse is the auth endpoint's data payload.
type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login implements session.IdentityProvider against POST /api/v1/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, session.User, error) {
	var data loginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		model.LoginRequest{Email: email, Password: password}, &data)
	if err != nil {
		return "", session.User{}, err
	}
	return data.Token, session.User{Email: data.User.Email, Admin: data.User.IsAdmin()}, nil
}

// Logout invalidates the server-side session registry entry.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/logout", &bytes.Buffer{})
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return repository.ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return translateStatus(resp.StatusCode, env.Error)
	}
	return nil
}

var _ session.IdentityProvider = (*Client)(nil)
