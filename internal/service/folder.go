package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

// AddFolder creates a folder. Icon and color are optional display hints.
func (s *KeywordService) AddFolder(ctx context.Context, sc store.Scope, name, icon, color string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", model.ErrValidation)
	}
	return s.store.Folders().Create(ctx, sc, &model.Folder{Name: name, Icon: icon, Color: color})
}

// UpdateFolder merges the given fields. A stale id is a no-op.
func (s *KeywordService) UpdateFolder(ctx context.Context, sc store.Scope, id string, upd model.FolderUpdate) error {
	err := s.store.Folders().Update(ctx, sc, id, upd)
	if err == model.ErrNotFound {
		return nil
	}
	return err
}

// DeleteFolder removes the folder; targets that referenced it become
// uncategorized rather than being deleted.
func (s *KeywordService) DeleteFolder(ctx context.Context, sc store.Scope, id string) error {
	return s.store.Folders().Delete(ctx, sc, id)
}

// ListFolders returns all folders for the scope.
func (s *KeywordService) ListFolders(ctx context.Context, sc store.Scope) ([]*model.Folder, error) {
	return s.store.Folders().List(ctx, sc)
}
