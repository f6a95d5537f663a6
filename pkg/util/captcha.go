package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// captchaTTL bounds how long an issued challenge stays answerable.
const captchaTTL = 10 * time.Minute

// CaptchaChallenge is the arithmetic question shown on the contact form.
// Token seals the operands and an expiry under an HMAC; the form echoes it
// back so the answer is checked against a challenge this server issued,
// not operands the client picked itself.
type CaptchaChallenge struct {
	A     int    `json:"a"`
	B     int    `json:"b"`
	Token string `json:"token"`
}

// NewCaptchaChallenge generates a fresh challenge with operands in [1, 9],
// signed with secret.
func NewCaptchaChallenge(secret string) (CaptchaChallenge, error) {
	a, err := randDigit()
	if err != nil {
		return CaptchaChallenge{}, err
	}
	b, err := randDigit()
	if err != nil {
		return CaptchaChallenge{}, err
	}
	expires := time.Now().Add(captchaTTL).Unix()
	return CaptchaChallenge{A: a, B: b, Token: signChallenge(secret, a, b, expires)}, nil
}

// VerifyCaptcha checks the submitted answer against the operands sealed in
// token. A tampered, malformed or expired token fails just like a wrong sum.
func VerifyCaptcha(secret, token string, answer int) bool {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	if !hmac.Equal([]byte(sig), []byte(signPayload(secret, payload))) {
		return false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return false
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return false
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || time.Now().Unix() > expires {
		return false
	}

	return a+b == answer
}

func signChallenge(secret string, a, b int, expires int64) string {
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%d:%d:%d", a, b, expires)),
	)
	return payload + "." + signPayload(secret, payload)
}

func signPayload(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func randDigit() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 1, nil
}
