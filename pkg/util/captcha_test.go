package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const captchaTestSecret = "captcha-test-secret"

func TestNewCaptchaChallenge(t *testing.T) {
	// Operands stay in single-digit range so the question is trivially
	// answerable by a person.
	for i := 0; i < 100; i++ {
		challenge, err := NewCaptchaChallenge(captchaTestSecret)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, challenge.A, 1)
		assert.LessOrEqual(t, challenge.A, 9)
		assert.GreaterOrEqual(t, challenge.B, 1)
		assert.LessOrEqual(t, challenge.B, 9)
		assert.NotEmpty(t, challenge.Token)
	}
}

func TestVerifyCaptcha(t *testing.T) {
	challenge, err := NewCaptchaChallenge(captchaTestSecret)
	require.NoError(t, err)
	sum := challenge.A + challenge.B

	t.Run("Correct answer", func(t *testing.T) {
		assert.True(t, VerifyCaptcha(captchaTestSecret, challenge.Token, sum))
	})

	t.Run("Wrong answer", func(t *testing.T) {
		assert.False(t, VerifyCaptcha(captchaTestSecret, challenge.Token, sum+1))
	})

	t.Run("Wrong secret", func(t *testing.T) {
		assert.False(t, VerifyCaptcha("another-secret", challenge.Token, sum))
	})

	t.Run("Tampered token", func(t *testing.T) {
		// An attacker picking their own operands cannot forge the signature.
		forged := signChallenge("guessed-secret", 1, 1, time.Now().Add(time.Minute).Unix())
		assert.False(t, VerifyCaptcha(captchaTestSecret, forged, 2))
	})

	t.Run("Malformed token", func(t *testing.T) {
		assert.False(t, VerifyCaptcha(captchaTestSecret, "not-a-token", sum))
		assert.False(t, VerifyCaptcha(captchaTestSecret, "", sum))
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := signChallenge(captchaTestSecret, 3, 4, time.Now().Add(-time.Minute).Unix())
		assert.False(t, VerifyCaptcha(captchaTestSecret, expired, 7))
	})
}
