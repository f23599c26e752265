package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost es fijo: ningun caller puede bajar la fuerza del hash.
const bcryptCost = 12

var ErrEmptyPassword = errors.New("empty password")

// PasswordHasher encapsula hash y verificacion bcrypt.
type PasswordHasher struct{}

func (PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify devuelve false ante cualquier mismatch o hash malformado.
func (PasswordHasher) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
