package dto

// UpdateDigestRequest subscribes an address; an empty email unsubscribes.
type UpdateDigestRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

// DigestResponse represents the digest subscription of a plan.
type DigestResponse struct {
	Email      string `json:"email,omitempty"`
	Subscribed bool   `json:"subscribed"`
}

// SendDigestResponse is returned when a digest is queued.
type SendDigestResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Week    int    `json:"week"`
}
