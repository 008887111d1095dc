// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec

import (
	"errors"
	"os"
	"strings"
)

// Environment variables holding the two signing secrets. Access and refresh
// tokens are signed with distinct keys so that a leaked access secret cannot
// mint long-lived credentials.
const (
	accessSecretEnvVariable  = "ACCESS_TOKEN_SECRET"
	refreshSecretEnvVariable = "REFRESH_TOKEN_SECRET"
)

var (
	// ErrMissingAccessSecret indicates ACCESS_TOKEN_SECRET is not configured.
	ErrMissingAccessSecret = errors.New("sec: access token secret is not configured")

	// ErrMissingRefreshSecret indicates REFRESH_TOKEN_SECRET is not configured.
	ErrMissingRefreshSecret = errors.New("sec: refresh token secret is not configured")
)

// SecretProvider resolves the signing secrets for the two token kinds.
//
// # Lazy resolution
//
// Secrets are resolved per call, not at process start. A missing secret
// fails the individual request that needed it while unrelated traffic
// (public pages, unauthenticated API calls) keeps flowing.
type SecretProvider interface {

	// AccessSecret returns the key used to sign and verify access tokens.
	AccessSecret() ([]byte, error)

	// RefreshSecret returns the key used to sign and verify refresh tokens.
	RefreshSecret() ([]byte, error)
}

// EnvSecrets resolves signing secrets from environment variables on every
// call. It is the production [SecretProvider].
type EnvSecrets struct{}

// AccessSecret reads ACCESS_TOKEN_SECRET from the environment.
func (EnvSecrets) AccessSecret() ([]byte, error) {
	return readSecretEnv(accessSecretEnvVariable, ErrMissingAccessSecret)
}

// RefreshSecret reads REFRESH_TOKEN_SECRET from the environment.
func (EnvSecrets) RefreshSecret() ([]byte, error) {
	return readSecretEnv(refreshSecretEnvVariable, ErrMissingRefreshSecret)
}

func readSecretEnv(name string, missing error) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil, missing
	}
	return []byte(raw), nil
}

// StaticSecrets is a [SecretProvider] backed by fixed byte slices.
// Only intended for test use.
type StaticSecrets struct {
	Access  []byte
	Refresh []byte
}

// AccessSecret returns the fixed access key.
func (s StaticSecrets) AccessSecret() ([]byte, error) {
	if len(s.Access) == 0 {
		return nil, ErrMissingAccessSecret
	}
	return s.Access, nil
}

// RefreshSecret returns the fixed refresh key.
func (s StaticSecrets) RefreshSecret() ([]byte, error) {
	if len(s.Refresh) == 0 {
		return nil, ErrMissingRefreshSecret
	}
	return s.Refresh, nil
}
