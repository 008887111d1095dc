// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonevolutio/modon/internal/platform/apperr"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
	logins  int
}

func newMemoryUserRepository(users ...*auth.User) *memoryUserRepository {
	repo := &memoryUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
	for _, user := range users {
		repo.byID[user.ID] = user
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (r *memoryUserRepository) List(_ context.Context) ([]auth.User, error) {
	users := make([]auth.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *memoryUserRepository) RecordLogin(_ context.Context, userID string) error {
	r.logins++
	return nil
}

func (r *memoryUserRepository) SoftDelete(_ context.Context, id string) error {
	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
	return nil
}

// memorySessionRepository is an in-memory SessionRepository keyed by token digest.
type memorySessionRepository struct {
	sessions map[string]*auth.Session
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: make(map[string]*auth.Session)}
}

func (r *memorySessionRepository) Save(_ context.Context, tokenHash string, session *auth.Session) error {
	r.sessions[tokenHash] = session
	return nil
}

func (r *memorySessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}
	return session, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

// # Fixtures

func testTokenService() *sec.TokenService {
	return sec.NewTokenService(sec.StaticSecrets{
		Access:  []byte("test-access-secret"),
		Refresh: []byte("test-refresh-secret"),
	})
}

func testUser(t *testing.T, email, password string, role sec.Role, active bool) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &auth.User{
		ID:           "018f3b1a-0000-7000-8000-000000000001",
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test User",
		Role:         role,
		IsActive:     active,
	}
}

func newTestService(t *testing.T, users ...*auth.User) (*auth.Service, *memoryUserRepository, *memorySessionRepository) {
	t.Helper()

	userRepo := newMemoryUserRepository(users...)
	sessionRepo := newMemorySessionRepository()
	service := auth.NewService(userRepo, sessionRepo, testTokenService())
	return service, userRepo, sessionRepo
}

// # Login

/*
TestService_Login verifies the credential check and session establishment.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_credentials", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleBuyer, true)
		service, userRepo, sessionRepo := newTestService(t, user)

		session, err := service.Login(ctx, auth.LoginInput{
			Email:     user.Email,
			Password:  "correct horse",
			UserAgent: "test-agent",
			IPAddress: "203.0.113.9",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, int64(sec.AccessTokenTTL.Seconds()), session.ExpiresIn)
		assert.Equal(t, user.Email, session.User.Email)

		// Session is tracked server-side under the refresh token digest.
		stored, err := sessionRepo.FindByTokenHash(ctx, sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.UserID)
		assert.Equal(t, "test-agent", stored.UserAgent)
		assert.Equal(t, 1, userRepo.logins)

		// The access token round-trips through the verifier.
		claims, err := testTokenService().VerifyAccessToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, sec.RoleBuyer, claims.Role)
	})

	t.Run("wrong_password", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleBuyer, true)
		service, _, _ := newTestService(t, user)

		_, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "battery staple"})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("unknown_email", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Login(ctx, auth.LoginInput{Email: "nobody@modonevolutio.com", Password: "whatever"})
		require.Error(t, err)

		// Same generic message as a bad password, no account enumeration.
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("suspended_account", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleBuyer, false)
		service, _, _ := newTestService(t, user)

		_, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "correct horse"})
		require.Error(t, err)
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})

	t.Run("remember_me_extends_session", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleBuyer, true)
		service, _, sessionRepo := newTestService(t, user)

		session, err := service.Login(ctx, auth.LoginInput{
			Email:      user.Email,
			Password:   "correct horse",
			RememberMe: true,
		})
		require.NoError(t, err)

		stored, err := sessionRepo.FindByTokenHash(ctx, sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.True(t, stored.RememberMe)
		assert.Greater(t, time.Until(stored.ExpiresAt), sec.RefreshTokenTTL)
	})
}

// # Refresh Rotation

/*
TestService_RefreshSession verifies the refresh token rotation mechanism.
*/
func TestService_RefreshSession(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation_replaces_session", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAgent, true)
		service, _, sessionRepo := newTestService(t, user)

		first, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "correct horse"})
		require.NoError(t, err)

		rotated, err := service.RefreshSession(ctx, first.RefreshToken, "test-agent", "203.0.113.9")
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

		// The new session exists, the old one is revoked.
		_, err = sessionRepo.FindByTokenHash(ctx, sec.HashToken(rotated.RefreshToken))
		require.NoError(t, err)
		_, err = sessionRepo.FindByTokenHash(ctx, sec.HashToken(first.RefreshToken))
		require.Error(t, err)
	})

	t.Run("rotation_preserves_remember_me", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAgent, true)
		service, _, sessionRepo := newTestService(t, user)

		first, err := service.Login(ctx, auth.LoginInput{
			Email:      user.Email,
			Password:   "correct horse",
			RememberMe: true,
		})
		require.NoError(t, err)

		rotated, err := service.RefreshSession(ctx, first.RefreshToken, "", "")
		require.NoError(t, err)

		// The long-lived flag survives rotation on both the transport session
		// and the stored record.
		assert.True(t, rotated.RememberMe)
		stored, err := sessionRepo.FindByTokenHash(ctx, sec.HashToken(rotated.RefreshToken))
		require.NoError(t, err)
		assert.True(t, stored.RememberMe)
		assert.Greater(t, time.Until(stored.ExpiresAt), sec.RefreshTokenTTL)
	})

	t.Run("replay_of_rotated_token_rejected", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAgent, true)
		service, _, _ := newTestService(t, user)

		first, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "correct horse"})
		require.NoError(t, err)

		_, err = service.RefreshSession(ctx, first.RefreshToken, "", "")
		require.NoError(t, err)

		// Presenting the consumed token again must fail even though its
		// signature is still valid.
		_, err = service.RefreshSession(ctx, first.RefreshToken, "", "")
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired refresh token", apperr.As(err).Message)
	})

	t.Run("forged_token_rejected", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAgent, true)
		service, _, _ := newTestService(t, user)

		foreign := sec.NewTokenService(sec.StaticSecrets{
			Access:  []byte("other-access"),
			Refresh: []byte("other-refresh"),
		})
		forged, err := foreign.IssueRefreshToken(user.ID, false)
		require.NoError(t, err)

		_, err = service.RefreshSession(ctx, forged, "", "")
		require.Error(t, err)
	})

	t.Run("suspended_user_cannot_refresh", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAgent, true)
		service, userRepo, _ := newTestService(t, user)

		first, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "correct horse"})
		require.NoError(t, err)

		userRepo.byID[user.ID].IsActive = false

		_, err = service.RefreshSession(ctx, first.RefreshToken, "", "")
		require.Error(t, err)
	})
}

// # Logout

/*
TestService_Logout verifies revocation and idempotency.
*/
func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleBuyer, true)
	service, _, sessionRepo := newTestService(t, user)

	session, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, session.RefreshToken))
	_, err = sessionRepo.FindByTokenHash(ctx, sec.HashToken(session.RefreshToken))
	require.Error(t, err)

	// A second logout with the same dead token still succeeds.
	require.NoError(t, service.Logout(ctx, session.RefreshToken))
}

// # Password Management

/*
TestService_ChangePassword verifies the credential rotation rules.
*/
func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("updates_hash_and_revokes_session", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "old password", sec.RoleBuyer, true)
		service, userRepo, sessionRepo := newTestService(t, user)

		session, err := service.Login(ctx, auth.LoginInput{Email: user.Email, Password: "old password"})
		require.NoError(t, err)

		err = service.ChangePassword(ctx, user.ID, "old password", "new password", session.RefreshToken)
		require.NoError(t, err)

		assert.True(t, sec.CheckPasswordHash("new password", userRepo.byID[user.ID].PasswordHash))
		_, err = sessionRepo.FindByTokenHash(ctx, sec.HashToken(session.RefreshToken))
		require.Error(t, err)
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		user := testUser(t, "omar@modonevolutio.com", "old password", sec.RoleBuyer, true)
		service, userRepo, _ := newTestService(t, user)

		err := service.ChangePassword(ctx, user.ID, "not the password", "new password", "")
		require.Error(t, err)
		assert.Equal(t, "Current password is incorrect", apperr.As(err).Message)
		assert.True(t, sec.CheckPasswordHash("old password", userRepo.byID[user.ID].PasswordHash))
	})
}

// # Development Fixture

/*
TestService_SeedDevAdmin verifies the idempotent local fixture.
*/
func TestService_SeedDevAdmin(t *testing.T) {
	ctx := context.Background()

	service, userRepo, _ := newTestService(t)

	require.NoError(t, service.SeedDevAdmin(ctx))

	seeded, err := userRepo.FindByEmail(ctx, auth.DevAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleSuperAdmin, seeded.Role)
	assert.True(t, seeded.IsActive)
	assert.True(t, sec.CheckPasswordHash(auth.DevAdminPassword, seeded.PasswordHash))

	// Seeding again leaves the existing account untouched.
	require.NoError(t, service.SeedDevAdmin(ctx))
	again, err := userRepo.FindByEmail(ctx, auth.DevAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, again.ID)
}
