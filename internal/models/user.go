package models

import "time"

// User is an account of the local auth provider.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Email     string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32)"`
	Password  string    `gorm:"type:varchar(255);not null"` // bcrypt hash
	CreatedAt time.Time
}

// AuthUser is the user record returned by an auth provider.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Session is the token pair issued on a successful login or registration.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
}

// AuthResult is what login and register hand back to the client.
// Session is nil when the provider still requires a confirmation step.
type AuthResult struct {
	User    AuthUser `json:"user"`
	Session *Session `json:"session"`
}
