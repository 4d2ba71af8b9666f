package services

import (
	"context"
	"errors"
	"log"

	"storefront/internal/models"
)

// ProviderError is a rejection reported by the auth provider, such as bad
// credentials or a duplicate registration. Message is safe to show clients.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// IsProviderError reports whether err is a provider rejection and returns it.
func IsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}

// AuthProvider signs users in and up.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignUp(ctx context.Context, email, password, phone string) (*models.AuthResult, error)
}

// AuthService handles business logic for authentication.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{
		provider: provider,
	}
}

// Login authenticates a user with email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	result, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if _, ok := IsProviderError(err); !ok {
			log.Printf("Error during login for %s: %v", email, err)
		}
		return nil, err
	}
	return result, nil
}

// Register creates an account and, when the provider allows it, a session.
func (s *AuthService) Register(ctx context.Context, email, password, phone string) (*models.AuthResult, error) {
	result, err := s.provider.SignUp(ctx, email, password, phone)
	if err != nil {
		if _, ok := IsProviderError(err); !ok {
			log.Printf("Error registering %s: %v", email, err)
		}
		return nil, err
	}
	return result, nil
}
