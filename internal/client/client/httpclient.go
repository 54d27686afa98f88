// Package client talks to the auth server's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authservice/internal/common"
)

// Tokens mirrors the login/refresh response.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Profile mirrors GET /users/me.
type Profile struct {
	Email          string     `json:"email"`
	LastLoginDate  *time.Time `json:"last_login_date"`
	LastActiveDate *time.Time `json:"last_active_date"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient accepts "host:port" or a full URL.
func NewHTTPClient(addr string, timeout time.Duration) *HTTPClient {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/ping", "", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	req := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/signup", "", req, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Tokens, error) {
	req := map[string]string{"email": email, "password": password}
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	req := map[string]string{"refresh_token": refreshToken}
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", accessToken, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	req := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/api/v1/me/change_password", accessToken, req, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	}

	return apiErr
}

// IsUnauthorized reports a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
