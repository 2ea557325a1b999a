package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pinwords/keyword-backend/internal/model"
)

// projectIdRx keeps project ids url-safe: lowercase letters, digits, hyphen,
// underscore, 1-40 chars.
var projectIdRx = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)

// TargetName validates a main target name:
// - non-empty after trimming
// - at most 200 bytes
func TargetName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	return nil
}

// FolderName validates a folder name with the same rules as target names.
func FolderName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 100 {
		return fmt.Errorf("name exceeds 100 characters")
	}
	return nil
}

// ProjectID validates the project path segment.
func ProjectID(v string) error {
	if v == "" {
		return fmt.Errorf("projectId is required")
	}
	if !projectIdRx.MatchString(v) {
		return fmt.Errorf("projectId must match %s", projectIdRx.String())
	}
	return nil
}

// PriorityValue validates an optional priority string.
func PriorityValue(v *string) error {
	if v == nil {
		return nil
	}
	if !model.Priority(*v).Valid() {
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// BulkKeywords validates a bulk-add payload. Individual lines may be blank,
// the service reports those as skipped; the list itself must be present and
// bounded.
func BulkKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return fmt.Errorf("keywords list is required")
	}
	if len(keywords) > 500 {
		return fmt.Errorf("keywords list exceeds 500 entries")
	}
	for _, kw := range keywords {
		if len(kw) > 200 {
			return fmt.Errorf("keyword exceeds 200 characters")
		}
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}
