package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path   string
	query  string
	apikey string
	auth   string
	body   map[string]interface{}
}

func newServer(t *testing.T, status int, response string, rec *recorded) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.apikey = r.Header.Get("apikey")
		rec.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

const sessionResponse = `{
	"access_token": "access",
	"refresh_token": "refresh",
	"token_type": "bearer",
	"expires_in": 3600,
	"expires_at": 1700000000,
	"user": {"id": "0b9c7c1e-1111-4c1b-9a55-7d3f0f3b6a10", "email": "ada@example.com", "phone": ""}
}`

func TestSignInWithPassword(t *testing.T) {
	var rec recorded
	server := newServer(t, http.StatusOK, sessionResponse, &rec)
	client := supabase.NewClient(server.URL+"/", "anon-key")

	resp, err := client.SignInWithPassword(context.Background(), "ada@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/token", rec.path)
	assert.Equal(t, "grant_type=password", rec.query)
	assert.Equal(t, "anon-key", rec.apikey)
	assert.Equal(t, "Bearer anon-key", rec.auth)
	assert.Equal(t, "ada@example.com", rec.body["email"])
	assert.Equal(t, "password123", rec.body["password"])

	assert.Equal(t, "ada@example.com", resp.User.Email)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "access", resp.Session.AccessToken)
	assert.Equal(t, "refresh", resp.Session.RefreshToken)
	assert.Equal(t, int64(3600), resp.Session.ExpiresIn)
}

func TestSignInWithPassword_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		response string
		message  string
	}{
		{name: "msg field", response: `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`, message: "Invalid login credentials"},
		{name: "error_description field", response: `{"error":"invalid_grant","error_description":"Email not confirmed"}`, message: "Email not confirmed"},
		{name: "no body", response: ``, message: "request failed with status 400"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var rec recorded
			server := newServer(t, http.StatusBadRequest, tc.response, &rec)
			client := supabase.NewClient(server.URL, "anon-key")

			_, err := client.SignInWithPassword(context.Background(), "ada@example.com", "wrong-password")
			var apiErr *supabase.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestSignUp_AwaitingConfirmation(t *testing.T) {
	var rec recorded
	server := newServer(t, http.StatusOK, `{"id":"3d1f","email":"ada@example.com","user_metadata":{"phone":"+15550100"}}`, &rec)
	client := supabase.NewClient(server.URL, "anon-key")

	resp, err := client.SignUp(context.Background(), "ada@example.com", "password123", "+15550100")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/signup", rec.path)
	assert.Equal(t, map[string]interface{}{"phone": "+15550100"}, rec.body["data"])
	assert.Equal(t, "3d1f", resp.User.ID)
	assert.Equal(t, "+15550100", resp.User.UserMetadata["phone"])
	assert.Nil(t, resp.Session)
}

func TestSignUp_AutoConfirmed(t *testing.T) {
	var rec recorded
	server := newServer(t, http.StatusOK, sessionResponse, &rec)
	client := supabase.NewClient(server.URL, "anon-key")

	resp, err := client.SignUp(context.Background(), "ada@example.com", "password123", "+15550100")
	require.NoError(t, err)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "access", resp.Session.AccessToken)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	var rec recorded
	server := newServer(t, http.StatusUnprocessableEntity, `{"code":422,"msg":"User already registered"}`, &rec)
	client := supabase.NewClient(server.URL, "anon-key")

	_, err := client.SignUp(context.Background(), "ada@example.com", "password123", "+15550100")
	var apiErr *supabase.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already registered", apiErr.Message)
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := supabase.NewClient(url, "anon-key")
	_, err := client.SignInWithPassword(context.Background(), "ada@example.com", "password123")
	require.Error(t, err)
	var apiErr *supabase.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCanceledContext(t *testing.T) {
	client := supabase.NewClient("http://127.0.0.1:1", "anon-key")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SignInWithPassword(ctx, "ada@example.com", "password123")
	assert.ErrorIs(t, err, context.Canceled)
}
