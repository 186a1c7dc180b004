// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	domainerror "github.com/mealsync/backend/internal/domain/error"
)

const (
	defaultSessionDuration = 30 * 24 * time.Hour

	tokenTypeSession = "plan_session"
	tokenIssuer      = "mealsync"
)

// SessionClaims represents the JWT claims of a plan session token.
type SessionClaims struct {
	PlanID    string `json:"plan_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// sessionTokenService implements the adapter.SessionTokenService interface.
type sessionTokenService struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewSessionTokenService creates a new session token service instance.
// A non-positive duration falls back to 30 days.
func NewSessionTokenService(secret string, duration time.Duration) adapter.SessionTokenService {
	if duration <= 0 {
		duration = defaultSessionDuration
	}
	return &sessionTokenService{
		secret:   []byte(secret),
		duration: duration,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GenerateSessionToken signs a token bound to the plan.
func (s *sessionTokenService) GenerateSessionToken(_ context.Context, planID uuid.UUID) (*adapter.SessionToken, error) {
	now := s.now()
	expiresAt := now.Add(s.duration)
	claims := SessionClaims{
		PlanID:    planID.String(),
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   planID.String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &adapter.SessionToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateSessionToken parses a token and returns the plan it grants access to.
// Every failure wraps ErrInvalidSessionToken.
func (s *sessionTokenService) ValidateSessionToken(_ context.Context, tokenString string) (*adapter.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidSessionToken
	}

	if claims.TokenType != tokenTypeSession {
		return nil, fmt.Errorf("%w: unexpected token type %q", domainerror.ErrInvalidSessionToken, claims.TokenType)
	}

	planID, err := uuid.Parse(claims.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid plan ID", domainerror.ErrInvalidSessionToken)
	}

	return &adapter.SessionClaims{
		PlanID:    planID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
