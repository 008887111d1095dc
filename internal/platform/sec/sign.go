// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package sec implements the token and credential layer of the MODON platform.

It covers HMAC-SHA256 signing, the compact token codec, access/refresh token
issuance and verification, the role→permission table, and password hashing.

# Architecture

This package isolates security-sensitive code from the domain logic. It is
injected into the application layer behind small interfaces ([SecretProvider],
the middleware-facing verifier) so that tests can substitute static secrets
and hand-crafted tokens.

# Failure policy

Verification never panics and never reports why a token was rejected: every
failure branch collapses into [ErrInvalidToken]. Only secret resolution may
return a distinct error, and only to the immediate caller within the same
request.
*/
package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the HMAC-SHA256 signature of data keyed by secret.
//
// The result is base64url-encoded without padding, matching the compact
// token serialization format.
func Sign(data string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected signature for data and compares it
// against the supplied one in constant time.
//
// # Timing
//
// A length mismatch is rejected immediately (the length of an HMAC-SHA256
// signature is public, so short-circuiting leaks nothing). Equal-length
// inputs are always compared over their full length with an XOR accumulator
// so that the comparison duration is independent of where the first
// differing byte sits.
func VerifySignature(data, signature string, secret []byte) bool {
	expected := Sign(data, secret)
	if len(expected) != len(signature) {
		return false
	}

	var diff byte
	for i := 0; i < len(expected); i++ {
		diff |= expected[i] ^ signature[i]
	}
	return diff == 0
}
