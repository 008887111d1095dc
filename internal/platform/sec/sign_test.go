// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modonevolutio/modon/internal/platform/sec"
)

/*
TestSign_Deterministic verifies that signing is a pure function of its inputs
and produces padding-free base64url output.
*/
func TestSign_Deterministic(t *testing.T) {
	secret := []byte("test-signing-secret")

	first := sec.Sign("header.payload", secret)
	second := sec.Sign("header.payload", secret)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)

	// base64url alphabet, no padding
	assert.NotContains(t, first, "=")
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}

/*
TestSign_KeyAndDataSensitivity verifies that changing either the data or the
secret changes the signature.
*/
func TestSign_KeyAndDataSensitivity(t *testing.T) {
	secret := []byte("test-signing-secret")

	base := sec.Sign("header.payload", secret)

	assert.NotEqual(t, base, sec.Sign("header.payloae", secret))
	assert.NotEqual(t, base, sec.Sign("header.payload", []byte("other-secret")))
}

/*
TestVerifySignature covers acceptance of the genuine signature and rejection
of tampered or mismatched-length inputs.
*/
func TestVerifySignature(t *testing.T) {
	secret := []byte("test-signing-secret")
	signature := sec.Sign("header.payload", secret)

	t.Run("accepts_genuine_signature", func(t *testing.T) {
		assert.True(t, sec.VerifySignature("header.payload", signature, secret))
	})

	t.Run("rejects_wrong_secret", func(t *testing.T) {
		assert.False(t, sec.VerifySignature("header.payload", signature, []byte("other")))
	})

	t.Run("rejects_length_mismatch", func(t *testing.T) {
		// Shorter and longer inputs take the O(1) length-check path.
		assert.False(t, sec.VerifySignature("header.payload", "", secret))
		assert.False(t, sec.VerifySignature("header.payload", signature[:len(signature)-1], secret))
		assert.False(t, sec.VerifySignature("header.payload", signature+"A", secret))
	})

	t.Run("rejects_equal_length_content_mismatch", func(t *testing.T) {
		// Flip every position in turn; each must be rejected.
		for i := 0; i < len(signature); i++ {
			flipped := flipChar(signature, i)
			assert.False(t, sec.VerifySignature("header.payload", flipped, secret),
				"flipped position %d must be rejected", i)
		}
	})
}

// flipChar replaces the character at index i with a different base64url character.
func flipChar(s string, i int) string {
	replacement := byte('A')
	if s[i] == 'A' {
		replacement = 'B'
	}
	var b strings.Builder
	b.WriteString(s[:i])
	b.WriteByte(replacement)
	b.WriteString(s[i+1:])
	return b.String()
}
