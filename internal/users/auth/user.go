// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/modonevolutio/modon/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the MODON Evolutio platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         sec.Role  `json:"role"`
	IsActive     bool      `json:"is_active"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents an active refresh-token session.
//
// Sessions live in Redis keyed by the SHA-256 digest of the refresh token and
// expire together with it. A refresh is only honored while its session row
// still exists, which is what makes server-side revocation possible for
// otherwise stateless tokens.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TokenID    string    `json:"token_id"`
	UserAgent  string    `json:"user_agent"`
	IPAddress  string    `json:"ip_address"`
	RememberMe bool      `json:"remember_me"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldRole            = "role"
	FieldRememberMe      = "remember_me"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldUser            = "user"
	FieldAccessToken     = "accessToken"
	FieldRefreshToken    = "refreshToken"
	FieldExpiresIn       = "expiresIn"
	FieldMessage         = "message"
)
