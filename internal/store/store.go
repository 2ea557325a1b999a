package store

import (
	"context"

	"github.com/pinwords/keyword-backend/internal/model"
)

// Scope identifies whose data an operation touches: one user working in one
// project. Every row (remote) or document (local) is keyed by it.
type Scope struct {
	UserID    string
	ProjectID string
}

// Store exposes persistence operations required by the keyword service.
// Implementations live under internal/store/<driver>/ (postgres, sqlite) and
// must be interchangeable: callers depend only on this interface.
type Store interface {
	Targets() Targets
	Folders() Folders

	// Replace atomically swaps the entire document for a scope. Used by
	// import; no merge is performed.
	Replace(ctx context.Context, sc Scope, doc *model.KeywordData) error
}

type Targets interface {
	// Create assigns an ID when empty, stamps CreatedAt/UpdatedAt, and
	// appends the target to the end of the display order.
	Create(ctx context.Context, sc Scope, t *model.MainTarget) (*model.MainTarget, error)
	Get(ctx context.Context, sc Scope, id string) (*model.MainTarget, error)
	// List returns targets in display order.
	List(ctx context.Context, sc Scope) ([]*model.MainTarget, error)
	// Update merges non-nil fields and refreshes UpdatedAt. Returns
	// model.ErrNotFound for an unknown id.
	Update(ctx context.Context, sc Scope, id string, upd model.TargetUpdate) error
	// Delete removes the target and its embedded keywords. Deleting an
	// unknown id is a no-op.
	Delete(ctx context.Context, sc Scope, id string) error
	// SaveOrder persists a new display order. ids must be a permutation of
	// the stored target ids.
	SaveOrder(ctx context.Context, sc Scope, ids []string) error
}

type Folders interface {
	Create(ctx context.Context, sc Scope, f *model.Folder) (*model.Folder, error)
	Get(ctx context.Context, sc Scope, id string) (*model.Folder, error)
	List(ctx context.Context, sc Scope) ([]*model.Folder, error)
	Update(ctx context.Context, sc Scope, id string, upd model.FolderUpdate) error
	// Delete removes the folder and clears FolderID on every target that
	// referenced it. Targets themselves are kept. Unknown id is a no-op.
	Delete(ctx context.Context, sc Scope, id string) error
}
