// Package service implements the keyword-organization operations on top of
// the store contract. All invariants live here: bulk-add deduplication, done
// toggles, display reordering, and the folder weak-reference cascade. The
// service is backend-agnostic; wire it with any store.Store implementation.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

type KeywordService struct {
	store store.Store
}

func NewKeywordService(s store.Store) *KeywordService {
	return &KeywordService{store: s}
}

// AddMainTarget creates a target with default priority medium, not done, and
// an empty keyword list. The name must be non-empty after trimming.
func (s *KeywordService) AddMainTarget(ctx context.Context, sc store.Scope, name, folderID string) (*model.MainTarget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: target name is required", model.ErrValidation)
	}
	t := &model.MainTarget{
		Name:             name,
		FolderID:         folderID,
		Priority:         model.PriorityMedium,
		RelevantKeywords: []model.RelevantKeyword{},
	}
	return s.store.Targets().Create(ctx, sc, t)
}

// UpdateMainTarget merges the given fields into the target. A stale id is a
// no-op, not an error.
func (s *KeywordService) UpdateMainTarget(ctx context.Context, sc store.Scope, id string, upd model.TargetUpdate) error {
	err := s.store.Targets().Update(ctx, sc, id, upd)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteMainTarget removes the target and its embedded keywords. Idempotent.
func (s *KeywordService) DeleteMainTarget(ctx context.Context, sc store.Scope, id string) error {
	return s.store.Targets().Delete(ctx, sc, id)
}

// GetMainTarget returns one target or model.ErrNotFound.
func (s *KeywordService) GetMainTarget(ctx context.Context, sc store.Scope, id string) (*model.MainTarget, error) {
	return s.store.Targets().Get(ctx, sc, id)
}

// ListMainTargets returns all targets in display order.
func (s *KeywordService) ListMainTargets(ctx context.Context, sc store.Scope) ([]*model.MainTarget, error) {
	return s.store.Targets().List(ctx, sc)
}

// AddRelevantKeywords adds a batch of keyword strings to one target,
// classifying every input line. The duplicate check is case-insensitive and
// the working set grows as the batch proceeds, so a second occurrence of the
// same text within one batch is reported as a duplicate, not added twice.
// An unknown target id skips the whole batch.
func (s *KeywordService) AddRelevantKeywords(ctx context.Context, sc store.Scope, targetID string, keywords []string) (model.BulkAddResult, error) {
	res := model.BulkAddResult{Added: []string{}, Duplicates: []string{}, Skipped: []string{}}

	target, err := s.store.Targets().Get(ctx, sc, targetID)
	if errors.Is(err, model.ErrNotFound) {
		res.Skipped = append(res.Skipped, keywords...)
		return res, nil
	}
	if err != nil {
		return res, err
	}

	existing := make(map[string]struct{}, len(target.RelevantKeywords))
	for _, kw := range target.RelevantKeywords {
		existing[strings.ToLower(kw.Text)] = struct{}{}
	}

	for _, raw := range keywords {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			res.Skipped = append(res.Skipped, raw)
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := existing[key]; ok {
			res.Duplicates = append(res.Duplicates, trimmed)
			continue
		}
		res.Added = append(res.Added, trimmed)
		existing[key] = struct{}{}
	}

	if len(res.Added) > 0 {
		next := make([]model.RelevantKeyword, 0, len(target.RelevantKeywords)+len(res.Added))
		next = append(next, target.RelevantKeywords...)
		for _, text := range res.Added {
			next = append(next, model.RelevantKeyword{Text: text})
		}
		if err := s.UpdateMainTarget(ctx, sc, targetID, model.TargetUpdate{Keywords: &next}); err != nil {
			return res, err
		}
	}
	return res, nil
}

// RemoveRelevantKeyword removes every keyword whose text matches exactly
// (case-sensitive, unlike the dedup check). Absent text or target is a no-op.
func (s *KeywordService) RemoveRelevantKeyword(ctx context.Context, sc store.Scope, targetID, text string) error {
	target, err := s.store.Targets().Get(ctx, sc, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	next := make([]model.RelevantKeyword, 0, len(target.RelevantKeywords))
	for _, kw := range target.RelevantKeywords {
		if kw.Text != text {
			next = append(next, kw)
		}
	}
	if len(next) == len(target.RelevantKeywords) {
		return nil
	}
	return s.UpdateMainTarget(ctx, sc, targetID, model.TargetUpdate{Keywords: &next})
}

// ToggleMainTargetDone flips the target's done flag, stamping CompletedAt on
// the way in and clearing it on the way out.
func (s *KeywordService) ToggleMainTargetDone(ctx context.Context, sc store.Scope, id string) error {
	target, err := s.store.Targets().Get(ctx, sc, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	done := !target.IsDone
	upd := model.TargetUpdate{IsDone: &done}
	if done {
		now := time.Now().UTC()
		upd.CompletedAt = &now
	}
	return s.UpdateMainTarget(ctx, sc, id, upd)
}

// ToggleRelevantKeywordDone is the same toggle scoped to one keyword within
// one target. The keyword's done state is independent of its parent's.
func (s *KeywordService) ToggleRelevantKeywordDone(ctx context.Context, sc store.Scope, targetID, text string) error {
	target, err := s.store.Targets().Get(ctx, sc, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	changed := false
	next := make([]model.RelevantKeyword, len(target.RelevantKeywords))
	for i, kw := range target.RelevantKeywords {
		if kw.Text == text {
			kw.IsDone = !kw.IsDone
			if kw.IsDone {
				now := time.Now().UTC()
				kw.CompletedAt = &now
			} else {
				kw.CompletedAt = nil
			}
			changed = true
		}
		next[i] = kw
	}
	if !changed {
		return nil
	}
	return s.UpdateMainTarget(ctx, sc, targetID, model.TargetUpdate{Keywords: &next})
}

// ReorderMainTargets moves the target at oldIndex to newIndex, preserving
// every other relative ordering.
func (s *KeywordService) ReorderMainTargets(ctx context.Context, sc store.Scope, oldIndex, newIndex int) error {
	targets, err := s.store.Targets().List(ctx, sc)
	if err != nil {
		return err
	}
	if oldIndex < 0 || oldIndex >= len(targets) || newIndex < 0 || newIndex >= len(targets) {
		return fmt.Errorf("%w: reorder index out of range", model.ErrValidation)
	}
	if oldIndex == newIndex {
		return nil
	}

	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.ID)
	}
	moved := ids[oldIndex]
	ids = append(ids[:oldIndex], ids[oldIndex+1:]...)
	ids = append(ids[:newIndex], append([]string{moved}, ids[newIndex:]...)...)

	return s.store.Targets().SaveOrder(ctx, sc, ids)
}

// MoveToFolder reassigns a target to a folder; an empty folderID makes it
// uncategorized.
func (s *KeywordService) MoveToFolder(ctx context.Context, sc store.Scope, targetID, folderID string) error {
	return s.UpdateMainTarget(ctx, sc, targetID, model.TargetUpdate{FolderID: &folderID})
}
