// Package supabase talks to the password endpoints of a hosted Supabase
// (GoTrue) auth service.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

// User is the subset of the GoTrue user object the service uses.
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// Session is a GoTrue token response.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *User  `json:"user"`
}

// AuthResponse is the outcome of a sign-in or sign-up. Session is nil when
// the provider still waits for the user to confirm the address.
type AuthResponse struct {
	User    User
	Session *Session
}

// APIError is a rejection reported by the auth service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase auth: %s (status %d)", e.Message, e.StatusCode)
}

// Client calls the GoTrue REST API of one Supabase project.
type Client struct {
	baseURL string
	anonKey string
	timeout time.Duration
	http    *fiber.Client
}

// NewClient creates a client for the project at baseURL using its anon key.
func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		timeout: defaultTimeout,
		http:    &fiber.Client{},
	}
}

// SignInWithPassword exchanges an email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	var session Session
	raw, err := c.post(ctx, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	if session.User == nil {
		return nil, errors.New("decode sign-in response: missing user")
	}
	return &AuthResponse{User: *session.User, Session: &session}, nil
}

// SignUp registers a new user. The phone number is stored as user metadata.
func (c *Client) SignUp(ctx context.Context, email, password, phone string) (*AuthResponse, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"phone": phone},
	}
	raw, err := c.post(ctx, "/auth/v1/signup", body)
	if err != nil {
		return nil, err
	}

	// With auto-confirm the response is a session; otherwise it is the bare
	// user awaiting confirmation.
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode sign-up response: %w", err)
	}
	if session.AccessToken != "" && session.User != nil {
		return &AuthResponse{User: *session.User, Session: &session}, nil
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode sign-up response: %w", err)
	}
	return &AuthResponse{User: user}, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := c.http.Post(c.baseURL + path).
		Set("apikey", c.anonKey).
		Set(fiber.HeaderAuthorization, "Bearer "+c.anonKey).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		JSON(body).
		Timeout(timeout)

	code, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("supabase request %s: %w", path, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, &APIError{StatusCode: code, Message: errorMessage(raw, code)}
	}
	return raw, nil
}

// errorMessage picks the human readable message out of the error shapes
// GoTrue has used over time.
func errorMessage(raw []byte, code int) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, candidate := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if candidate != "" {
				return candidate
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", code)
}
