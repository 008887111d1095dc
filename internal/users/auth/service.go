// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package auth implements the core identity and access management system.

It handles credential verification, secure password hashing, and the session
lifecycle for the token pair (access + refresh, stored in Redis).

Architecture:

  - Service: Orchestrates business logic (Login, Refresh, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Bcrypt password hashes and HMAC-signed token pairs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/modonevolutio/modon/internal/platform/apperr"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for producing and checking the token pair.
type TokenIssuer interface {
	// IssueAccessToken creates a signed access token for the given identity.
	IssueAccessToken(userID, email string, role sec.Role, permissions []string) (string, error)

	// IssueRefreshToken creates a signed refresh token. rememberMe extends
	// the lifetime.
	IssueRefreshToken(userID string, rememberMe bool) (string, error)

	// VerifyRefreshToken checks a refresh token and returns its claims.
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokens            TokenIssuer
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokens TokenIssuer,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokens:            tokens,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
	UserAgent  string
	IPAddress  string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access token lifetime in seconds.
	RememberMe   bool  // Carried through rotation so cookie TTLs match token TTLs.
	User         *User
}

/*
Login validates user credentials and issues the token pair.

Description: Verifies identity, performs the bcrypt password comparison, and
initializes a new tracked session for the refresh token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up by email. Generic message on every failure path to prevent
	// account enumeration.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.establishSession(context, user, input.RememberMe, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	// Best-effort login bookkeeping, a failed stamp never blocks the login.
	_ = service.userRepository.RecordLogin(context, user.ID)

	return session, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Idempotent: logging out an already-dead session succeeds.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	tokenHash := sec.HashToken(refreshToken)

	// A missing session means the token was already expired or revoked.
	if _, err := service.sessionRepository.FindByTokenHash(context, tokenHash); err != nil {
		return nil
	}

	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the token signature and lifetime, confirms the session
still exists server-side, revokes it to prevent reuse (replay mitigation), and
issues a fresh rotated pair.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Signature and expiry check first, before touching storage.
	claims, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// The session must still exist server-side: a verified token whose
	// session is gone was revoked or already rotated.
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if session.UserID != claims.UserID {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session to prevent replay attacks.
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil || !user.IsActive {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.establishSession(context, user, session.RememberMe, userAgent, ipAddress)
}

// establishSession issues a fresh token pair and persists the tracking session.
func (service *Service) establishSession(context context.Context, user *User, rememberMe bool, userAgent, ipAddress string) (*LoginSession, error) {

	permissions := sec.PermissionsForRole(user.Role)
	accessToken, err := service.tokens.IssueAccessToken(user.ID, user.Email, user.Role, permissions)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(user.ID, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Round-trip the refresh token through the verifier to recover its
	// server-assigned ID and expiry for the session record.
	claims, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_verify_failed: %w", err)
	}

	session := &Session{
		ID:         uuid.New(),
		UserID:     user.ID,
		TokenID:    claims.TokenID,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
		RememberMe: rememberMe,
		ExpiresAt:  time.Unix(claims.ExpiresAt, 0),
		CreatedAt:  time.Now(),
	}

	if err := service.sessionRepository.Save(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(sec.AccessTokenTTL.Seconds()),
		RememberMe:   rememberMe,
		User:         user,
	}, nil
}

// # Password Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before rotating the hash, and
revokes the presented session so other holders of the old credentials are
forced to re-authenticate.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security side effect: the presented session dies with the old password.
	if currentRefreshToken != "" {
		_ = service.sessionRepository.Delete(context, sec.HashToken(currentRefreshToken))
	}

	return nil
}

// # Development Fixture

/*
SeedDevAdmin ensures the local back-office fixture account exists.

Description: Called at startup outside production only. Creating the account
is idempotent: an existing fixture row is left untouched.

Parameters:
  - context: context.Context

Returns:
  - err: Persistence failures
*/
func (service *Service) SeedDevAdmin(context context.Context) error {

	if _, err := service.userRepository.FindByEmail(context, DevAdminEmail); err == nil {
		return nil
	}

	hashedPassword, err := sec.HashPassword(DevAdminPassword)
	if err != nil {
		return fmt.Errorf("auth_service_seed_hash_failed: %w", err)
	}

	admin := &User{
		ID:           uuid.New(),
		Email:        DevAdminEmail,
		PasswordHash: hashedPassword,
		DisplayName:  DevAdminName,
		Role:         sec.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, admin); err != nil {
		return fmt.Errorf("auth_service_seed_create_failed: %w", err)
	}

	return nil
}
