package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Admin logins are rare, so the hash cost sits above the bcrypt default.
const passwordHashCost = 12

// HashPassword hashes an admin account password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
