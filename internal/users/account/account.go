// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package account handles user profile management and back-office user
administration.

It lets authenticated users view and update their own identity data, and lets
back-office staff list accounts, change roles, toggle suspension, and soft
delete accounts.

# Architecture

  - Entities: Profile (safety-mapped DTO over auth.User).
  - Domain: This package depends on the auth package for the User entity and
    its repository. It owns no tables of its own.
  - Security: Role changes and deletions are restricted by permission checks
    at the routing layer; the service enforces self-demotion rules.
*/
package account

import (
	"time"

	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/users/auth"
)

// # Domain Entities

// Profile provides a safety-mapped view of a user account.
// It omits the password hash and soft-delete marker for transport.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name"`
	Phone       string    `json:"phone"`
	AvatarURL   string    `json:"avatar_url"`
	Role        sec.Role  `json:"role"`
	IsActive    bool      `json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfile maps a domain user to its transport view.
func NewProfile(user *auth.User) Profile {
	return Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// Global field names for validation
const (
	FieldDisplayName = "name"
	FieldPhone       = "phone"
	FieldAvatarURL   = "avatar_url"
	FieldRole        = "role"
	FieldIsActive    = "is_active"
)
