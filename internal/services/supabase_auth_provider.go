package services

import (
	"context"
	"errors"

	"storefront/internal/models"
	"storefront/pkg/supabase"
)

// SupabaseClient is the part of supabase.Client the provider needs.
type SupabaseClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.AuthResponse, error)
	SignUp(ctx context.Context, email, password, phone string) (*supabase.AuthResponse, error)
}

// SupabaseAuthProvider delegates authentication to a hosted Supabase project.
type SupabaseAuthProvider struct {
	client SupabaseClient
}

// NewSupabaseAuthProvider creates a provider backed by client.
func NewSupabaseAuthProvider(client SupabaseClient) *SupabaseAuthProvider {
	return &SupabaseAuthProvider{client: client}
}

// SignIn implements AuthProvider.
func (p *SupabaseAuthProvider) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	resp, err := p.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, translateSupabaseError(err)
	}
	return toAuthResult(resp), nil
}

// SignUp implements AuthProvider.
func (p *SupabaseAuthProvider) SignUp(ctx context.Context, email, password, phone string) (*models.AuthResult, error) {
	resp, err := p.client.SignUp(ctx, email, password, phone)
	if err != nil {
		return nil, translateSupabaseError(err)
	}
	return toAuthResult(resp), nil
}

func translateSupabaseError(err error) error {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		return &ProviderError{Message: apiErr.Message}
	}
	return err
}

func toAuthResult(resp *supabase.AuthResponse) *models.AuthResult {
	user := models.AuthUser{
		ID:    resp.User.ID,
		Email: resp.User.Email,
		Phone: resp.User.Phone,
	}
	if user.Phone == "" {
		if phone, ok := resp.User.UserMetadata["phone"].(string); ok {
			user.Phone = phone
		}
	}

	result := &models.AuthResult{User: user}
	if resp.Session != nil {
		result.Session = &models.Session{
			AccessToken:  resp.Session.AccessToken,
			RefreshToken: resp.Session.RefreshToken,
			TokenType:    resp.Session.TokenType,
			ExpiresIn:    resp.Session.ExpiresIn,
			ExpiresAt:    resp.Session.ExpiresAt,
		}
	}
	return result
}
