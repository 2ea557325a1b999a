package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

// Store is the local backend. It keeps the whole KeywordData tree for a scope
// as one JSON document in a single row: every read decodes the full document
// and every mutation re-encodes and writes it back, so the persisted copy can
// never drift from the in-memory snapshot mid-operation.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file at path.
func New(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires an existing connection (used by the factory and tests).
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection (local-only use case).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Targets() store.Targets { return &targets{s} }
func (s *Store) Folders() store.Folders { return &folders{s} }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Replace swaps the entire document for a scope.
func (s *Store) Replace(ctx context.Context, sc store.Scope, doc *model.KeywordData) error {
	d := *doc
	if d.MainTargets == nil {
		d.MainTargets = []*model.MainTarget{}
	}
	if d.Folders == nil {
		d.Folders = []*model.Folder{}
	}
	return s.save(ctx, s.db, sc, &d)
}

// --- document plumbing ---

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *Store) load(ctx context.Context, q querier, sc store.Scope) (*model.KeywordData, error) {
	var raw string
	row := q.QueryRowContext(ctx, `SELECT doc FROM keyword_documents WHERE user_id=? AND project_id=?`, sc.UserID, sc.ProjectID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.KeywordData{MainTargets: []*model.MainTarget{}, Folders: []*model.Folder{}}, nil
		}
		return nil, err
	}
	return model.DecodeDocument([]byte(raw))
}

func (s *Store) save(ctx context.Context, e execer, sc store.Scope, doc *model.KeywordData) error {
	raw, err := model.EncodeDocument(doc)
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, `
        INSERT INTO keyword_documents (user_id, project_id, doc, updated_at) VALUES (?,?,?,?)
        ON CONFLICT(user_id, project_id) DO UPDATE SET doc=excluded.doc, updated_at=excluded.updated_at
    `, sc.UserID, sc.ProjectID, string(raw), time.Now().UTC())
	return err
}

// mutate runs fn against the decoded document and writes the result back in
// one transaction.
func (s *Store) mutate(ctx context.Context, sc store.Scope, fn func(doc *model.KeywordData) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := s.load(ctx, tx, sc)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := s.save(ctx, tx, sc, doc); err != nil {
		return err
	}
	return tx.Commit()
}

// errNoop aborts a mutate without failing the caller (idempotent deletes).
var errNoop = errors.New("no-op")

func (s *Store) mutateIdempotent(ctx context.Context, sc store.Scope, fn func(doc *model.KeywordData) error) error {
	err := s.mutate(ctx, sc, fn)
	if errors.Is(err, errNoop) {
		return nil
	}
	return err
}

// --- targets ---

type targets struct{ s *Store }

func (t *targets) Create(ctx context.Context, sc store.Scope, in *model.MainTarget) (*model.MainTarget, error) {
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if !out.Priority.Valid() {
		out.Priority = model.PriorityMedium
	}
	if out.RelevantKeywords == nil {
		out.RelevantKeywords = []model.RelevantKeyword{}
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	err := t.s.mutate(ctx, sc, func(doc *model.KeywordData) error {
		doc.MainTargets = append(doc.MainTargets, &out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *targets) Get(ctx context.Context, sc store.Scope, id string) (*model.MainTarget, error) {
	doc, err := t.s.load(ctx, t.s.db, sc)
	if err != nil {
		return nil, err
	}
	for _, mt := range doc.MainTargets {
		if mt.ID == id {
			return mt, nil
		}
	}
	return nil, model.ErrNotFound
}

func (t *targets) List(ctx context.Context, sc store.Scope) ([]*model.MainTarget, error) {
	doc, err := t.s.load(ctx, t.s.db, sc)
	if err != nil {
		return nil, err
	}
	return doc.MainTargets, nil
}

func (t *targets) Update(ctx context.Context, sc store.Scope, id string, upd model.TargetUpdate) error {
	return t.s.mutate(ctx, sc, func(doc *model.KeywordData) error {
		for _, mt := range doc.MainTargets {
			if mt.ID == id {
				applyTargetUpdate(mt, upd)
				return nil
			}
		}
		return model.ErrNotFound
	})
}

func (t *targets) Delete(ctx context.Context, sc store.Scope, id string) error {
	return t.s.mutateIdempotent(ctx, sc, func(doc *model.KeywordData) error {
		kept := doc.MainTargets[:0]
		for _, mt := range doc.MainTargets {
			if mt.ID != id {
				kept = append(kept, mt)
			}
		}
		if len(kept) == len(doc.MainTargets) {
			return errNoop
		}
		doc.MainTargets = kept
		return nil
	})
}

func (t *targets) SaveOrder(ctx context.Context, sc store.Scope, ids []string) error {
	return t.s.mutate(ctx, sc, func(doc *model.KeywordData) error {
		if len(ids) != len(doc.MainTargets) {
			return model.ErrValidation
		}
		byID := make(map[string]*model.MainTarget, len(doc.MainTargets))
		for _, mt := range doc.MainTargets {
			byID[mt.ID] = mt
		}
		ordered := make([]*model.MainTarget, 0, len(ids))
		for _, id := range ids {
			mt, ok := byID[id]
			if !ok {
				return model.ErrValidation
			}
			ordered = append(ordered, mt)
			delete(byID, id)
		}
		doc.MainTargets = ordered
		return nil
	})
}

func applyTargetUpdate(mt *model.MainTarget, upd model.TargetUpdate) {
	if upd.Name != nil {
		mt.Name = *upd.Name
	}
	if upd.Keywords != nil {
		mt.RelevantKeywords = *upd.Keywords
	}
	if upd.IsDone != nil {
		mt.IsDone = *upd.IsDone
		mt.CompletedAt = upd.CompletedAt
	}
	if upd.Priority != nil {
		mt.Priority = *upd.Priority
	}
	if upd.Category != nil {
		mt.Category = *upd.Category
	}
	if upd.FolderID != nil {
		mt.FolderID = *upd.FolderID
	}
	mt.UpdatedAt = time.Now().UTC()
}

// --- folders ---

type folders struct{ s *Store }

func (f *folders) Create(ctx context.Context, sc store.Scope, in *model.Folder) (*model.Folder, error) {
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	err := f.s.mutate(ctx, sc, func(doc *model.KeywordData) error {
		doc.Folders = append(doc.Folders, &out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *folders) Get(ctx context.Context, sc store.Scope, id string) (*model.Folder, error) {
	doc, err := f.s.load(ctx, f.s.db, sc)
	if err != nil {
		return nil, err
	}
	for _, fd := range doc.Folders {
		if fd.ID == id {
			return fd, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *folders) List(ctx context.Context, sc store.Scope) ([]*model.Folder, error) {
	doc, err := f.s.load(ctx, f.s.db, sc)
	if err != nil {
		return nil, err
	}
	return doc.Folders, nil
}

func (f *folders) Update(ctx context.Context, sc store.Scope, id string, upd model.FolderUpdate) error {
	return f.s.mutate(ctx, sc, func(doc *model.KeywordData) error {
		for _, fd := range doc.Folders {
			if fd.ID == id {
				if upd.Name != nil {
					fd.Name = *upd.Name
				}
				if upd.Icon != nil {
					fd.Icon = *upd.Icon
				}
				if upd.Color != nil {
					fd.Color = *upd.Color
				}
				fd.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return model.ErrNotFound
	})
}

func (f *folders) Delete(ctx context.Context, sc store.Scope, id string) error {
	return f.s.mutateIdempotent(ctx, sc, func(doc *model.KeywordData) error {
		kept := doc.Folders[:0]
		for _, fd := range doc.Folders {
			if fd.ID != id {
				kept = append(kept, fd)
			}
		}
		if len(kept) == len(doc.Folders) {
			return errNoop
		}
		doc.Folders = kept
		// Weak reference: targets survive with the folder assignment cleared.
		now := time.Now().UTC()
		for _, mt := range doc.MainTargets {
			if mt.FolderID == id {
				mt.FolderID = ""
				mt.UpdatedAt = now
			}
		}
		return nil
	})
}
