package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs the remote store backed directly by database/sql.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

// Bootstrap connects, applies the schema, and verifies reachability.
func Bootstrap(ctx context.Context, dsn string) (*Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// Store is the remote backend: main targets and folders as addressable rows
// scoped by (user_id, project_id), keyword lists embedded as JSONB.
type Store struct{ db *sql.DB }

func (s *Store) Targets() store.Targets { return &targets{db: s.db} }
func (s *Store) Folders() store.Folders { return &folders{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Replace swaps the full document for a scope: wipe both tables, reinsert.
func (s *Store) Replace(ctx context.Context, sc store.Scope, doc *model.KeywordData) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM main_targets WHERE user_id=$1 AND project_id=$2`, sc.UserID, sc.ProjectID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE user_id=$1 AND project_id=$2`, sc.UserID, sc.ProjectID); err != nil {
		return err
	}
	for pos, t := range doc.MainTargets {
		kw, err := json.Marshal(t.RelevantKeywords)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO main_targets
                (user_id, project_id, target_id, name, relevant_keywords, is_done, completed_at, priority, category, folder_id, position, created_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        `, sc.UserID, sc.ProjectID, t.ID, t.Name, kw, t.IsDone, t.CompletedAt,
			string(t.Priority), nullIfEmpty(t.Category), nullIfEmpty(t.FolderID), pos, t.CreatedAt, t.UpdatedAt); err != nil {
			return err
		}
	}
	for _, f := range doc.Folders {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO folders (user_id, project_id, folder_id, name, icon, color, created_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        `, sc.UserID, sc.ProjectID, f.ID, f.Name, nullIfEmpty(f.Icon), nullIfEmpty(f.Color), f.CreatedAt, f.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- targets ---

type targets struct{ db *sql.DB }

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
	kw, err := json.Marshal(out.RelevantKeywords)
	if err != nil {
		return nil, err
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Append to the end of the display order.
	var pos int
	if err := tx.QueryRowContext(ctx, `
        SELECT COALESCE(MAX(position)+1, 0) FROM main_targets WHERE user_id=$1 AND project_id=$2
    `, sc.UserID, sc.ProjectID).Scan(&pos); err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `
        INSERT INTO main_targets
            (user_id, project_id, target_id, name, relevant_keywords, is_done, completed_at, priority, category, folder_id, position)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at
    `, sc.UserID, sc.ProjectID, out.ID, out.Name, kw, out.IsDone, out.CompletedAt,
		string(out.Priority), nullIfEmpty(out.Category), nullIfEmpty(out.FolderID), pos)
	if err := row.Scan(&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *targets) Get(ctx context.Context, sc store.Scope, id string) (*model.MainTarget, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT target_id, name, relevant_keywords, is_done, completed_at, priority, category, folder_id, created_at, updated_at
        FROM main_targets WHERE user_id=$1 AND project_id=$2 AND target_id=$3
    `, sc.UserID, sc.ProjectID, id)
	return scanTarget(row)
}

func (t *targets) List(ctx context.Context, sc store.Scope) ([]*model.MainTarget, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT target_id, name, relevant_keywords, is_done, completed_at, priority, category, folder_id, created_at, updated_at
        FROM main_targets WHERE user_id=$1 AND project_id=$2 ORDER BY position
    `, sc.UserID, sc.ProjectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.MainTarget
	for rows.Next() {
		mt, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}

func (t *targets) Update(ctx context.Context, sc store.Scope, id string, upd model.TargetUpdate) error {
	set := []string{"updated_at = now()"}
	args := []interface{}{sc.UserID, sc.ProjectID, id}
	add := func(expr string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if upd.Name != nil {
		add("name = $%d", *upd.Name)
	}
	if upd.Keywords != nil {
		kw, err := json.Marshal(*upd.Keywords)
		if err != nil {
			return err
		}
		add("relevant_keywords = $%d", kw)
	}
	if upd.IsDone != nil {
		add("is_done = $%d", *upd.IsDone)
		add("completed_at = $%d", upd.CompletedAt)
	}
	if upd.Priority != nil {
		add("priority = $%d", string(*upd.Priority))
	}
	if upd.Category != nil {
		add("category = $%d", nullIfEmpty(*upd.Category))
	}
	if upd.FolderID != nil {
		add("folder_id = $%d", nullIfEmpty(*upd.FolderID))
	}

	q := "UPDATE main_targets SET " + strings.Join(set, ", ") + " WHERE user_id=$1 AND project_id=$2 AND target_id=$3"
	res, err := t.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (t *targets) Delete(ctx context.Context, sc store.Scope, id string) error {
	_, err := t.db.ExecContext(ctx, `
        DELETE FROM main_targets WHERE user_id=$1 AND project_id=$2 AND target_id=$3
    `, sc.UserID, sc.ProjectID, id)
	return err
}

func (t *targets) SaveOrder(ctx context.Context, sc store.Scope, ids []string) error {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM main_targets WHERE user_id=$1 AND project_id=$2
    `, sc.UserID, sc.ProjectID).Scan(&count); err != nil {
		return err
	}
	if count != len(ids) {
		return model.ErrValidation
	}
	for pos, id := range ids {
		res, err := tx.ExecContext(ctx, `
            UPDATE main_targets SET position=$1 WHERE user_id=$2 AND project_id=$3 AND target_id=$4
        `, pos, sc.UserID, sc.ProjectID, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.ErrValidation
		}
	}
	return tx.Commit()
}

func scanTarget(row interface{ Scan(...interface{}) error }) (*model.MainTarget, error) {
	var mt model.MainTarget
	var kwRaw []byte
	var priority string
	var category, folderID sql.NullString
	if err := row.Scan(&mt.ID, &mt.Name, &kwRaw, &mt.IsDone, &mt.CompletedAt,
		&priority, &category, &folderID, &mt.CreatedAt, &mt.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	mt.Priority = model.Priority(priority)
	mt.Category = category.String
	mt.FolderID = folderID.String
	mt.RelevantKeywords = []model.RelevantKeyword{}
	if len(kwRaw) > 0 {
		if err := json.Unmarshal(kwRaw, &mt.RelevantKeywords); err != nil {
			return nil, err
		}
	}
	return &mt, nil
}

// --- folders ---

type folders struct{ db *sql.DB }

func (f *folders) Create(ctx context.Context, sc store.Scope, in *model.Folder) (*model.Folder, error) {
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	row := f.db.QueryRowContext(ctx, `
        INSERT INTO folders (user_id, project_id, folder_id, name, icon, color)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at
    `, sc.UserID, sc.ProjectID, out.ID, out.Name, nullIfEmpty(out.Icon), nullIfEmpty(out.Color))
	if err := row.Scan(&out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *folders) Get(ctx context.Context, sc store.Scope, id string) (*model.Folder, error) {
	row := f.db.QueryRowContext(ctx, `
        SELECT folder_id, name, icon, color, created_at, updated_at
        FROM folders WHERE user_id=$1 AND project_id=$2 AND folder_id=$3
    `, sc.UserID, sc.ProjectID, id)
	return scanFolder(row)
}

func (f *folders) List(ctx context.Context, sc store.Scope) ([]*model.Folder, error) {
	rows, err := f.db.QueryContext(ctx, `
        SELECT folder_id, name, icon, color, created_at, updated_at
        FROM folders WHERE user_id=$1 AND project_id=$2 ORDER BY created_at
    `, sc.UserID, sc.ProjectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Folder
	for rows.Next() {
		fd, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}
	return out, rows.Err()
}

func (f *folders) Update(ctx context.Context, sc store.Scope, id string, upd model.FolderUpdate) error {
	set := []string{"updated_at = now()"}
	args := []interface{}{sc.UserID, sc.ProjectID, id}
	add := func(expr string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}
	if upd.Name != nil {
		add("name = $%d", *upd.Name)
	}
	if upd.Icon != nil {
		add("icon = $%d", nullIfEmpty(*upd.Icon))
	}
	if upd.Color != nil {
		add("color = $%d", nullIfEmpty(*upd.Color))
	}

	q := "UPDATE folders SET " + strings.Join(set, ", ") + " WHERE user_id=$1 AND project_id=$2 AND folder_id=$3"
	res, err := f.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (f *folders) Delete(ctx context.Context, sc store.Scope, id string) error {
	tx, err := f.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Weak reference: clear the assignment on referencing targets, keep them.
	if _, err := tx.ExecContext(ctx, `
        UPDATE main_targets SET folder_id=NULL, updated_at=now()
        WHERE user_id=$1 AND project_id=$2 AND folder_id=$3
    `, sc.UserID, sc.ProjectID, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
        DELETE FROM folders WHERE user_id=$1 AND project_id=$2 AND folder_id=$3
    `, sc.UserID, sc.ProjectID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func scanFolder(row interface{ Scan(...interface{}) error }) (*model.Folder, error) {
	var fd model.Folder
	var icon, color sql.NullString
	if err := row.Scan(&fd.ID, &fd.Name, &icon, &color, &fd.CreatedAt, &fd.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	fd.Icon = icon.String
	fd.Color = color.String
	return &fd, nil
}

// helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
