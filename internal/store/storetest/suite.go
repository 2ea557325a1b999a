package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	sc := store.Scope{UserID: "u-" + uuid.New().String(), ProjectID: "p-" + uuid.New().String()}

	// Targets: create assigns id, timestamps, defaults
	t1, err := s.Targets().Create(ctx, sc, &model.MainTarget{Name: "vegan dinner"})
	if err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if t1.ID == "" || t1.Priority != model.PriorityMedium || t1.CreatedAt.IsZero() {
		t.Fatalf("CreateTarget defaults: %+v", t1)
	}
	t2, err := s.Targets().Create(ctx, sc, &model.MainTarget{Name: "meal prep", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateTarget t2: %v", err)
	}

	if got, err := s.Targets().Get(ctx, sc, t1.ID); err != nil || got.Name != "vegan dinner" {
		t.Fatalf("GetTarget: got=%+v err=%v", got, err)
	}
	if _, err := s.Targets().Get(ctx, sc, "missing"); err != model.ErrNotFound {
		t.Fatalf("GetTarget missing: want ErrNotFound, got %v", err)
	}

	// List preserves creation order
	lst, err := s.Targets().List(ctx, sc)
	if err != nil || len(lst) != 2 || lst[0].ID != t1.ID || lst[1].ID != t2.ID {
		t.Fatalf("ListTargets: n=%d err=%v", len(lst), err)
	}

	// Update merges fields and refreshes UpdatedAt
	name := "Vegan Dinner Ideas"
	done := true
	now := time.Now().UTC()
	if err := s.Targets().Update(ctx, sc, t1.ID, model.TargetUpdate{Name: &name, IsDone: &done, CompletedAt: &now}); err != nil {
		t.Fatalf("UpdateTarget: %v", err)
	}
	got, err := s.Targets().Get(ctx, sc, t1.ID)
	if err != nil || got.Name != name || !got.IsDone || got.CompletedAt == nil {
		t.Fatalf("UpdateTarget result: got=%+v err=%v", got, err)
	}
	if !got.UpdatedAt.After(t1.UpdatedAt) && !got.UpdatedAt.Equal(t1.UpdatedAt) {
		t.Fatalf("UpdateTarget UpdatedAt went backwards: %v -> %v", t1.UpdatedAt, got.UpdatedAt)
	}

	// Clearing the done flag clears completedAt
	notDone := false
	if err := s.Targets().Update(ctx, sc, t1.ID, model.TargetUpdate{IsDone: &notDone}); err != nil {
		t.Fatalf("UpdateTarget undone: %v", err)
	}
	if got, _ := s.Targets().Get(ctx, sc, t1.ID); got.IsDone || got.CompletedAt != nil {
		t.Fatalf("UpdateTarget undone result: %+v", got)
	}

	// Replacing the keyword list
	kws := []model.RelevantKeyword{{Text: "Easy Meals"}, {Text: "Quick Dinner", IsDone: true}}
	if err := s.Targets().Update(ctx, sc, t1.ID, model.TargetUpdate{Keywords: &kws}); err != nil {
		t.Fatalf("UpdateTarget keywords: %v", err)
	}
	if got, _ := s.Targets().Get(ctx, sc, t1.ID); len(got.RelevantKeywords) != 2 || got.RelevantKeywords[1].Text != "Quick Dinner" {
		t.Fatalf("keyword list not persisted: %+v", got.RelevantKeywords)
	}

	// Update of an unknown id reports not-found
	if err := s.Targets().Update(ctx, sc, "missing", model.TargetUpdate{Name: &name}); err != model.ErrNotFound {
		t.Fatalf("UpdateTarget missing: want ErrNotFound, got %v", err)
	}

	// SaveOrder is a permutation-only operation
	if err := s.Targets().SaveOrder(ctx, sc, []string{t2.ID, t1.ID}); err != nil {
		t.Fatalf("SaveOrder: %v", err)
	}
	if lst, _ := s.Targets().List(ctx, sc); lst[0].ID != t2.ID || lst[1].ID != t1.ID {
		t.Fatalf("SaveOrder not applied: %v, %v", lst[0].ID, lst[1].ID)
	}
	if err := s.Targets().SaveOrder(ctx, sc, []string{t2.ID}); err != model.ErrValidation {
		t.Fatalf("SaveOrder short list: want ErrValidation, got %v", err)
	}
	if err := s.Targets().SaveOrder(ctx, sc, []string{t2.ID, "missing"}); err != model.ErrValidation {
		t.Fatalf("SaveOrder unknown id: want ErrValidation, got %v", err)
	}

	// Folders
	f1, err := s.Folders().Create(ctx, sc, &model.Folder{Name: "recipes", Icon: "book", Color: "green"})
	if err != nil || f1.ID == "" {
		t.Fatalf("CreateFolder: %+v err=%v", f1, err)
	}
	if got, err := s.Folders().Get(ctx, sc, f1.ID); err != nil || got.Icon != "book" || got.Color != "green" {
		t.Fatalf("GetFolder: got=%+v err=%v", got, err)
	}
	newName := "dinner recipes"
	if err := s.Folders().Update(ctx, sc, f1.ID, model.FolderUpdate{Name: &newName}); err != nil {
		t.Fatalf("UpdateFolder: %v", err)
	}
	if fl, err := s.Folders().List(ctx, sc); err != nil || len(fl) != 1 || fl[0].Name != newName {
		t.Fatalf("ListFolders: %+v err=%v", fl, err)
	}

	// Folder delete clears back-references but keeps targets
	fid := f1.ID
	if err := s.Targets().Update(ctx, sc, t1.ID, model.TargetUpdate{FolderID: &fid}); err != nil {
		t.Fatalf("assign folder: %v", err)
	}
	if err := s.Folders().Delete(ctx, sc, f1.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if got, _ := s.Targets().Get(ctx, sc, t1.ID); got.FolderID != "" {
		t.Fatalf("folder reference not cleared: %+v", got)
	}
	if fl, _ := s.Folders().List(ctx, sc); len(fl) != 0 {
		t.Fatalf("folder still listed after delete: %+v", fl)
	}
	// Deleting again is a no-op
	if err := s.Folders().Delete(ctx, sc, f1.ID); err != nil {
		t.Fatalf("DeleteFolder idempotent: %v", err)
	}

	// Target delete is idempotent and cascades to embedded keywords
	if err := s.Targets().Delete(ctx, sc, t1.ID); err != nil {
		t.Fatalf("DeleteTarget: %v", err)
	}
	if err := s.Targets().Delete(ctx, sc, t1.ID); err != nil {
		t.Fatalf("DeleteTarget idempotent: %v", err)
	}
	if lst, _ := s.Targets().List(ctx, sc); len(lst) != 1 {
		t.Fatalf("ListTargets after delete: n=%d", len(lst))
	}

	// Replace swaps the whole document
	doc := &model.KeywordData{
		MainTargets: []*model.MainTarget{{
			ID: uuid.New().String(), Name: "imported", Priority: model.PriorityLow,
			RelevantKeywords: []model.RelevantKeyword{{Text: "from file"}},
			CreatedAt:        time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}},
		Folders: []*model.Folder{{
			ID: uuid.New().String(), Name: "imported folder",
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}},
	}
	if err := s.Replace(ctx, sc, doc); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	lst, err = s.Targets().List(ctx, sc)
	if err != nil || len(lst) != 1 || lst[0].Name != "imported" {
		t.Fatalf("List after Replace: n=%d err=%v", len(lst), err)
	}
	if len(lst[0].RelevantKeywords) != 1 || lst[0].RelevantKeywords[0].Text != "from file" {
		t.Fatalf("keywords after Replace: %+v", lst[0].RelevantKeywords)
	}
	if fl, err := s.Folders().List(ctx, sc); err != nil || len(fl) != 1 || fl[0].Name != "imported folder" {
		t.Fatalf("Folders after Replace: %+v err=%v", fl, err)
	}

	// Scope isolation: a different project sees nothing
	other := store.Scope{UserID: sc.UserID, ProjectID: "p-" + uuid.New().String()}
	if lst, err := s.Targets().List(ctx, other); err != nil || len(lst) != 0 {
		t.Fatalf("scope isolation: n=%d err=%v", len(lst), err)
	}
}
