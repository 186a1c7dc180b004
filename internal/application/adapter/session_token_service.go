package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed token granting access to one plan.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// SessionClaims are the validated contents of a session token.
type SessionClaims struct {
	PlanID    uuid.UUID
	ExpiresAt time.Time
}

// SessionTokenService defines the interface for plan session tokens.
type SessionTokenService interface {
	// GenerateSessionToken signs a token for the plan.
	GenerateSessionToken(ctx context.Context, planID uuid.UUID) (*SessionToken, error)

	// ValidateSessionToken verifies a token and returns its claims.
	ValidateSessionToken(ctx context.Context, token string) (*SessionClaims, error)
}
