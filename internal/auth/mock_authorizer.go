package auth

import (
	"context"
	"errors"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only
	LocalDevAPIKey = "sk_local_pinwords_dev_key"
)

// MockAuthorizer provides a simple authorizer for local development.
// It only recognizes the hardcoded LocalDevAPIKey and resolves it to a
// pinwords-dev actor with full access.
type MockAuthorizer struct{}

// NewMockAuthorizer creates a new MockAuthorizer for local development
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

// Authorize validates the hardcoded API key
func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, errors.New("invalid API key for local development")
	}

	return &ActorInfo{
		UserID:      "pinwords-dev",
		KeyName:     "Local Development Key",
		Permissions: []string{"*"},
	}, nil
}
