package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a clear-text password with bcrypt. The salt is
// embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a clear-text password against a bcrypt hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
