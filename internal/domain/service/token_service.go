package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by access tokens. The registered
// Subject holds the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the token subject, the authenticated user's email.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenService defines the interface for issuing and validating signed,
// time-limited bearer tokens. This abstracts the details of token creation
// from the use cases.
type TokenService interface {
	// GenerateToken creates a new signed access token whose subject is the
	// given user email, expiring a fixed duration from issuance.
	GenerateToken(email string) (string, error)

	// ValidateToken checks signature integrity and expiry of a token string.
	// An expired-but-validly-signed token is rejected the same way as a
	// tampered one.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured token lifetime.
	AccessTokenDuration() time.Duration
}
