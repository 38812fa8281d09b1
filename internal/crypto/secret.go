// Package crypto hashes and generates client secrets.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GeneratedSecretSize - количество случайных байт в сгенерированном секрете
const GeneratedSecretSize = 24

// ErrSecretMismatch is returned when a secret does not match its hash
var ErrSecretMismatch = errors.New("secret does not match")

// HashSecret хеширует секрет клиента с использованием bcrypt
// Используется сервером при регистрации клиента
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("secret cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// VerifySecret проверяет, соответствует ли секрет сохраненному хешу
func VerifySecret(secret, hash string) error {
	if secret == "" || hash == "" {
		return ErrSecretMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrSecretMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to verify secret: %w", err)
	}
	return nil
}

// GenerateSecret returns a random URL-safe secret
func GenerateSecret() (string, error) {
	buf := make([]byte, GeneratedSecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
