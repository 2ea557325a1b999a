package validate

import (
	"strings"
	"testing"
)

func TestTargetName(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{"valid", "Vegan Dinner Ideas", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"at limit", strings.Repeat("a", 200), false},
		{"too long", strings.Repeat("a", 201), true},
		{"unicode", "Déco Salon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TargetName(tt.value)
			if tt.expectError && err == nil {
				t.Fatalf("expected error for %q", tt.value)
			}
			if !tt.expectError && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.value, err)
			}
		})
	}
}

func TestProjectID(t *testing.T) {
	if err := ProjectID("my-project_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "UPPER", "has space", strings.Repeat("a", 41)} {
		if err := ProjectID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPriorityValue(t *testing.T) {
	if err := PriorityValue(nil); err != nil {
		t.Fatalf("nil priority should pass: %v", err)
	}
	high := "high"
	if err := PriorityValue(&high); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	urgent := "urgent"
	if err := PriorityValue(&urgent); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestBulkKeywords(t *testing.T) {
	if err := BulkKeywords(nil); err == nil {
		t.Fatal("expected error for empty list")
	}
	if err := BulkKeywords([]string{"a", "", "b"}); err != nil {
		t.Fatalf("blank lines are allowed, service skips them: %v", err)
	}
	if err := BulkKeywords(make([]string, 501)); err == nil {
		t.Fatal("expected error for oversized batch")
	}
	if err := BulkKeywords([]string{strings.Repeat("a", 201)}); err == nil {
		t.Fatal("expected error for oversized keyword")
	}
}
