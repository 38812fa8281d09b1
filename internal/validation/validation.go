// Package validation checks identifiers supplied by users and operators.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("validation failed")

// ClientIDPattern определяет допустимый формат client id:
// латинские буквы, цифры, '_', '-' и '.', длина 3-64 символа
var ClientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)

// ReservedCollectionPrefix marks internal client stores. Application
// collections may not start with it.
const ReservedCollectionPrefix = "_"

// CollectionPattern defines the allowed collection names: 1-64 letters,
// numbers, '_' or '-', not starting with ReservedCollectionPrefix
var CollectionPattern = regexp.MustCompile(`^[a-zA-Z0-9-][a-zA-Z0-9_-]{0,63}$`)

const (
	// MinClientIDLen минимальная длина client id
	MinClientIDLen = 3
	// MaxClientIDLen максимальная длина client id
	MaxClientIDLen = 64
	// MinSecretLen минимальная длина секрета клиента
	MinSecretLen = 12
)

// ValidateClientID checks a client identifier registered on the server
func ValidateClientID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: client id cannot be empty", ErrInvalid)
	}

	if len(id) < MinClientIDLen {
		return fmt.Errorf("%w: client id must be at least %d characters long", ErrInvalid, MinClientIDLen)
	}

	if len(id) > MaxClientIDLen {
		return fmt.Errorf("%w: client id must not exceed %d characters", ErrInvalid, MaxClientIDLen)
	}

	if !ClientIDPattern.MatchString(id) {
		return fmt.Errorf("%w: client id can only contain letters, numbers, '_', '-' and '.'", ErrInvalid)
	}

	return nil
}

// ValidateSecret проверяет минимальные требования к секрету клиента
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: secret cannot be empty", ErrInvalid)
	}

	if len(secret) < MinSecretLen {
		return fmt.Errorf("%w: secret must be at least %d characters long", ErrInvalid, MinSecretLen)
	}

	return nil
}

// ValidateCollection проверяет имя коллекции.
// Имена с зарезервированным префиксом отклоняются: они заняты служебными
// хранилищами клиента
func ValidateCollection(name string) error {
	if strings.HasPrefix(name, ReservedCollectionPrefix) {
		return fmt.Errorf("%w: collection name %q uses reserved prefix %q", ErrInvalid, name, ReservedCollectionPrefix)
	}
	if !CollectionPattern.MatchString(name) {
		return fmt.Errorf("%w: collection name %q must be 1-64 letters, numbers, '_' or '-'", ErrInvalid, name)
	}
	return nil
}
