package dto

import (
	"time"

	"github.com/mealsync/backend/internal/application/usecase/plan"
)

// SessionResponse is returned when a plan session starts.
type SessionResponse struct {
	PlanID    string    `json:"plan_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToSessionResponse converts the create session output.
func ToSessionResponse(output *plan.CreateSessionOutput) SessionResponse {
	return SessionResponse{
		PlanID:    output.Plan.ID.String(),
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
	}
}
