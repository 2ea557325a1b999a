package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
	"github.com/pinwords/keyword-backend/internal/store/storetest"
)

func makeSqliteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "keywords.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = s.DB().Close() })
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSqliteStore)
}

// The local backend persists one JSON document per scope; reopening the same
// file must yield the same data.
func TestSqliteStore_ReopenKeepsDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keywords.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sc := store.Scope{UserID: "u1", ProjectID: "p1"}
	created, err := s.Targets().Create(ctx, sc, &model.MainTarget{Name: "summer outfits"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.DB().Close() }()
	got, err := s2.Targets().Get(ctx, sc, created.ID)
	if err != nil || got.Name != "summer outfits" {
		t.Fatalf("get after reopen: got=%+v err=%v", got, err)
	}
}
