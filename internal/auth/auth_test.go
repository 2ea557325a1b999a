package auth

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestExtractAPIKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/v0/targets", nil)
	if _, err := ExtractAPIKey(r); err == nil {
		t.Fatal("expected error for missing header")
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, err := ExtractAPIKey(r); err == nil {
		t.Fatal("expected error for non-bearer header")
	}

	r.Header.Set("Authorization", "Bearer sk_test_123")
	key, err := ExtractAPIKey(r)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if key != "sk_test_123" {
		t.Fatalf("key = %q", key)
	}
}

func TestMockAuthorizer(t *testing.T) {
	m := NewMockAuthorizer()

	if _, err := m.Authorize(context.Background(), "wrong", "targets.list"); err == nil {
		t.Fatal("expected error for wrong key")
	}

	actor, err := m.Authorize(context.Background(), LocalDevAPIKey, "targets.list")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if actor.UserID != "pinwords-dev" || !actor.CanWrite() {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestStaticAuthorizer(t *testing.T) {
	if _, err := NewStaticAuthorizer(""); err == nil {
		t.Fatal("expected error for empty key list")
	}
	if _, err := NewStaticAuthorizer("malformed"); err == nil {
		t.Fatal("expected error for malformed entry")
	}

	s, err := NewStaticAuthorizer("sk_a=alice, sk_b=bob")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	actor, err := s.Authorize(context.Background(), "sk_b", "targets.create")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if actor.UserID != "bob" {
		t.Fatalf("user = %q, want bob", actor.UserID)
	}
	if _, err := s.Authorize(context.Background(), "sk_c", "targets.create"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
