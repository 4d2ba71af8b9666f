package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Messages match the hosted provider so clients see the same errors.
const (
	msgInvalidCredentials = "Invalid login credentials"
	msgAlreadyRegistered  = "User already registered"
)

// LocalAuthProvider keeps users in the application database, hashes their
// passwords with bcrypt and issues HS256 access tokens.
type LocalAuthProvider struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDuration time.Duration
	now        func() time.Time
}

// NewLocalAuthProvider creates a new LocalAuthProvider.
func NewLocalAuthProvider(userRepo repositories.UserRepository, jwtSecret string) *LocalAuthProvider {
	return &LocalAuthProvider{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDuration: time.Hour,
		now:        time.Now,
	}
}

// SignUp registers a new user and opens a session right away.
func (p *LocalAuthProvider) SignUp(ctx context.Context, email, password, phone string) (*models.AuthResult, error) {
	existing, err := p.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, &ProviderError{Message: msgAlreadyRegistered}
	}
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Phone:    phone,
		Password: string(hashedPassword),
	}
	if err := p.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return p.issue(user)
}

// SignIn checks the password and opens a session.
func (p *LocalAuthProvider) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := p.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &ProviderError{Message: msgInvalidCredentials}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &ProviderError{Message: msgInvalidCredentials}
	}
	return p.issue(user)
}

func (p *LocalAuthProvider) issue(user *models.User) (*models.AuthResult, error) {
	now := p.now()
	expiresAt := now.Add(p.tokenDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"phone": user.Phone,
		"role":  "authenticated",
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	})
	tokenString, err := token.SignedString(p.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResult{
		User: models.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Phone: user.Phone,
		},
		Session: &models.Session{
			AccessToken:  tokenString,
			RefreshToken: uuid.NewString(),
			TokenType:    "bearer",
			ExpiresIn:    int64(p.tokenDuration / time.Second),
			ExpiresAt:    expiresAt.Unix(),
		},
	}, nil
}
