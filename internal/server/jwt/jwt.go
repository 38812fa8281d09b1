// Package jwt issues and validates the HS256 access tokens handed to sync clients.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Issuer is written to and required in every token
const Issuer = "gophsync"

// ErrInvalidToken is wrapped by every validation failure
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims. Subject is the client id.
type Claims struct {
	gojwt.RegisteredClaims
}

// ClientID returns the authenticated client id
func (c *Claims) ClientID() string {
	return c.Subject
}

// Service provides JWT token generation and validation
type Service struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewService creates a new JWT service
// secret should be a cryptographically secure random string
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateAccessToken creates a new access token for clientID.
// Returns the token and its lifetime in seconds.
func (s *Service) GenerateAccessToken(clientID string) (string, int64, error) {
	now := s.now()

	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   clientID,
			Issuer:    Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, int64(s.ttl.Seconds()), nil
}

// ValidateAccessToken validates and parses an access token
func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	parser := gojwt.NewParser(
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(Issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.ClientID() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
