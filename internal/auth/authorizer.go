package auth

import (
	"context"
)

// ActorInfo contains information about an authenticated actor
type ActorInfo struct {
	UserID      string   `json:"user_id"`     // Owner of the keyword data
	KeyName     string   `json:"key_name"`    // Human-readable name
	Permissions []string `json:"permissions"` // Granted operations, "*" for all
}

// Authorizer validates API keys and checks permissions in one call
type Authorizer interface {
	// Authorize validates the API key and checks whether the actor can perform
	// the operation. Returns ActorInfo if authorized, an error otherwise.
	Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error)
}

// CanWrite reports whether the actor may perform mutating operations.
func (a *ActorInfo) CanWrite() bool {
	for _, p := range a.Permissions {
		if p == "*" || p == "write" {
			return true
		}
	}
	return false
}
