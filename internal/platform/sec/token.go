// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// # Token Constants

const (
	// TokenIssuer is the fixed 'iss' claim on every token this platform mints.
	TokenIssuer = "modon-evolutio"

	// TokenAudience is the fixed 'aud' claim on access tokens.
	TokenAudience = "modon-evolutio-web"

	// AccessTokenTTL is the lifetime of an access token. Short, so a leaked
	// token has a narrow window of use.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the default lifetime of a refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// RememberMeRefreshTokenTTL is the refresh token lifetime when the user
	// asked to stay signed in. The flag is a property of the session and is
	// decided at issuance.
	RememberMeRefreshTokenTTL = 30 * 24 * time.Hour

	// refreshTokenType is the 'type' discriminator carried by refresh tokens.
	// Refresh tokens are never accepted where an access token is expected.
	refreshTokenType = "refresh"
)

// ErrInvalidToken is the single rejection value for every verification
// failure: malformed shape, bad base64, bad JSON, wrong signature, expiry,
// wrong issuer/audience/type. Collapsing the reasons prevents the verifier
// from becoming an oracle for attackers probing token validity.
var ErrInvalidToken = errors.New("sec: invalid token")

// # Claims

// AccessClaims is the payload of an access token.
//
// Immutable once signed: changing any field requires issuing a new token.
type AccessClaims struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	IssuedAt    int64    `json:"iat"`
	ExpiresAt   int64    `json:"exp"`
	Issuer      string   `json:"iss"`
	Audience    string   `json:"aud"`
	TokenID     string   `json:"jti"`
}

// RefreshClaims is the payload of a refresh token. It carries only the
// identity needed to mint a new access token.
type RefreshClaims struct {
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Issuer    string `json:"iss"`
	TokenID   string `json:"jti"`
}

// tokenHeader is the fixed header of every token. There is no algorithm
// negotiation: a token claiming any other alg simply fails signature
// verification against the HS256 recomputation.
type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// # Token Codec

// EncodeToken serializes claims into the compact
// base64url(header).base64url(claims).signature form, signed with secret.
//
// The header is always {alg:"HS256",typ:"JWT"}.
func EncodeToken(claims any, secret []byte) (string, error) {
	headerJSON, err := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	return signingInput + "." + Sign(signingInput, secret), nil
}

// decodePayload splits token, verifies the signature over header.payload,
// and returns the raw claims JSON. Any malformation fails closed.
func decodePayload(token string, secret []byte) ([]byte, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}
	if !VerifySignature(parts[0]+"."+parts[1], parts[2], secret) {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	return payload, true
}

// # Token Service

// TokenService issues and verifies the platform's access/refresh token pair.
//
// Issuance is a pure function of its inputs plus wall-clock time; persistence
// of session metadata is the caller's responsibility.
type TokenService struct {
	secrets SecretProvider
}

// NewTokenService constructs a [TokenService] on top of a [SecretProvider].
func NewTokenService(secrets SecretProvider) *TokenService {
	return &TokenService{secrets: secrets}
}

// IssueAccessToken signs a short-lived access token carrying identity, role,
// and the resolved permission set.
func (service *TokenService) IssueAccessToken(userID, email string, role Role, permissions []string) (string, error) {
	secret, err := service.secrets.AccessSecret()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := AccessClaims{
		UserID:      userID,
		Email:       email,
		Role:        role,
		Permissions: permissions,
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(AccessTokenTTL).Unix(),
		Issuer:      TokenIssuer,
		Audience:    TokenAudience,
		TokenID:     uuid.NewString(),
	}
	return EncodeToken(claims, secret)
}

// IssueRefreshToken signs a long-lived refresh token for userID. rememberMe
// extends the lifetime from 7 to 30 days.
func (service *TokenService) IssueRefreshToken(userID string, rememberMe bool) (string, error) {
	secret, err := service.secrets.RefreshSecret()
	if err != nil {
		return "", err
	}

	ttl := RefreshTokenTTL
	if rememberMe {
		ttl = RememberMeRefreshTokenTTL
	}

	now := time.Now().UTC()
	claims := RefreshClaims{
		UserID:    userID,
		Type:      refreshTokenType,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
		Issuer:    TokenIssuer,
		TokenID:   uuid.NewString(),
	}
	return EncodeToken(claims, secret)
}

// VerifyAccessToken validates signature, expiry, issuer, and audience, and
// returns the typed claims.
//
// # Checks, in order
//
//  1. Exactly three segments.
//  2. Signature over header.payload.
//  3. Payload parses as JSON.
//  4. exp strictly in the future (exp > now, zero grace).
//  5. iss and aud match the platform constants.
func (service *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	secret, err := service.secrets.AccessSecret()
	if err != nil {
		return nil, err
	}

	payload, ok := decodePayload(strings.TrimSpace(token), secret)
	if !ok {
		return nil, ErrInvalidToken
	}

	var claims AccessClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt <= time.Now().Unix() {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != TokenIssuer || claims.Audience != TokenAudience {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// VerifyRefreshToken validates a refresh token. It mirrors the access token
// checks but requires the 'type' discriminator instead of an audience, and
// returns only the identity-bearing claims.
func (service *TokenService) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	secret, err := service.secrets.RefreshSecret()
	if err != nil {
		return nil, err
	}

	payload, ok := decodePayload(strings.TrimSpace(token), secret)
	if !ok {
		return nil, ErrInvalidToken
	}

	var claims RefreshClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt <= time.Now().Unix() {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != TokenIssuer || claims.Type != refreshTokenType {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
