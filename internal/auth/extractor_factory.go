package auth

import (
	"github.com/pinwords/keyword-backend/internal/config"
)

// AuthorizerFactory creates the appropriate Authorizer based on environment
type AuthorizerFactory struct {
	config *config.Config
}

// NewAuthorizerFactory creates a new AuthorizerFactory
func NewAuthorizerFactory(cfg *config.Config) *AuthorizerFactory {
	return &AuthorizerFactory{config: cfg}
}

// CreateAuthorizer picks the authorizer for the current deployment. Dev mode
// accepts only the hardcoded local key; otherwise keys come from
// KEYWORD_BACKEND_API_KEYS.
func (f *AuthorizerFactory) CreateAuthorizer() (Authorizer, error) {
	if f.config.IsDevMode() {
		return NewMockAuthorizer(), nil
	}
	return NewStaticAuthorizer(f.config.APIKeys)
}
