package auth

import (
	"context"
	"errors"
	"strings"
)

// StaticAuthorizer resolves API keys from a fixed key-to-user table, the
// shape produced by KEYWORD_BACKEND_API_KEYS ("key=user,key=user").
type StaticAuthorizer struct {
	users map[string]string
}

// NewStaticAuthorizer parses a comma-separated list of key=user pairs.
func NewStaticAuthorizer(spec string) (*StaticAuthorizer, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, user, ok := strings.Cut(pair, "=")
		if !ok || key == "" || user == "" {
			return nil, errors.New("API key entries must look like key=user")
		}
		users[key] = user
	}
	if len(users) == 0 {
		return nil, errors.New("no API keys configured")
	}
	return &StaticAuthorizer{users: users}, nil
}

// Authorize resolves the API key to its configured user
func (s *StaticAuthorizer) Authorize(ctx context.Context, apiKey, operation string) (*ActorInfo, error) {
	user, ok := s.users[apiKey]
	if !ok {
		return nil, errors.New("unknown API key")
	}
	return &ActorInfo{
		UserID:      user,
		KeyName:     "Configured Key",
		Permissions: []string{"*"},
	}, nil
}
