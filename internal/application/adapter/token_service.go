// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scopes granted to bookkeeping API clients.
const (
	ScopeBookkeepingRead  = "bookkeeping:read"
	ScopeBookkeepingWrite = "bookkeeping:write"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the token grants scope. A write grant implies read.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
		if scope == ScopeBookkeepingRead && s == ScopeBookkeepingWrite {
			return true
		}
	}
	return false
}

// TokenService defines the interface for bearer token operations.
type TokenService interface {
	// GenerateAccessToken issues an access token carrying the given scopes.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, scopes []string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
