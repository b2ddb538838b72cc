package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/auth"
)

// ErrUnauthorized is returned when the API rejects the bearer credential.
var ErrUnauthorized = errors.New("backend: credential rejected")

// RejectedError carries the credential the API refused, so a caller can tell
// whether the session still holds it. It matches ErrUnauthorized.
type RejectedError struct {
	Method     string
	Path       string
	Credential string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrUnauthorized, e.Method, e.Path)
}

func (e *RejectedError) Unwrap() error { return ErrUnauthorized }

// StatusError reports a non-2xx answer from the API.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// CredentialSource supplies the bearer credential for outbound calls.
type CredentialSource interface {
	Credential() (string, bool)
}

// Client talks to the remote restaurant API.
type Client struct {
	baseURL     string
	timeout     time.Duration
	credentials CredentialSource
}

// NewClient builds a client. credentials may be nil for unauthenticated calls only.
func NewClient(baseURL string, timeout time.Duration, credentials CredentialSource) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		timeout:     timeout,
		credentials: credentials,
	}
}

// WithCredentials returns a copy of the client bound to a credential source.
func (c *Client) WithCredentials(credentials CredentialSource) *Client {
	clone := *c
	clone.credentials = credentials
	return &clone
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges a username and password for a bearer credential.
// 401 maps to auth.ErrInvalidCredentials; every other failure to
// auth.ErrAuthServiceUnavailable.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.send(ctx, fiber.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized {
			return "", auth.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", auth.ErrAuthServiceUnavailable, err)
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", fmt.Errorf("%w: login response carried no token", auth.ErrAuthServiceUnavailable)
	}
	return resp.Token, nil
}

// do performs an authenticated call. A 401 answer becomes a *RejectedError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, ok := "", false
	if c.credentials != nil {
		token, ok = c.credentials.Credential()
	}
	if !ok {
		return ErrUnauthorized
	}

	err := c.send(ctx, method, path, token, body, out)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized {
		return &RejectedError{Method: method, Path: path, Credential: token}
	}
	return err
}

// Register creates an account without a bearer credential, for the public
// sign-up form next to login.
func (c *Client) Register(ctx context.Context, account Registration) error {
	return c.send(ctx, fiber.MethodPost, "/person", "", account, nil)
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	agent.Timeout(c.timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if status < 200 || status >= 300 {
		return &StatusError{Method: method, Path: path, Status: status, Body: string(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
