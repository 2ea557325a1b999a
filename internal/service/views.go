package service

import (
	"context"
	"strings"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

// SearchKeywords runs a case-insensitive substring match over every target
// name and every keyword text. Results follow display order: targets first
// by position, keywords in list order within their target. The result is
// computed fresh on every call.
func (s *KeywordService) SearchKeywords(ctx context.Context, sc store.Scope, query string) ([]model.SearchMatch, error) {
	targets, err := s.store.Targets().List(ctx, sc)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := []model.SearchMatch{}
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t.Name), q) {
			results = append(results, model.SearchMatch{MainTarget: t.Name, Keyword: t.Name, Type: model.MatchMain})
		}
		for _, kw := range t.RelevantKeywords {
			if strings.Contains(strings.ToLower(kw.Text), q) {
				results = append(results, model.SearchMatch{MainTarget: t.Name, Keyword: kw.Text, Type: model.MatchRelevant})
			}
		}
	}
	return results, nil
}

// GetActiveItems returns not-done targets, each with its keyword list
// filtered to not-done entries. The stored targets are not mutated.
func (s *KeywordService) GetActiveItems(ctx context.Context, sc store.Scope) (*model.ActiveItems, error) {
	targets, err := s.store.Targets().List(ctx, sc)
	if err != nil {
		return nil, err
	}

	active := &model.ActiveItems{MainTargets: []*model.MainTarget{}}
	for _, t := range targets {
		if t.IsDone {
			continue
		}
		view := *t
		view.RelevantKeywords = []model.RelevantKeyword{}
		for _, kw := range t.RelevantKeywords {
			if !kw.IsDone {
				view.RelevantKeywords = append(view.RelevantKeywords, kw)
			}
		}
		active.MainTargets = append(active.MainTargets, &view)
	}
	return active, nil
}

// GetArchivedItems returns done targets and done keywords as two separate
// lists. A done keyword is listed regardless of its parent's done state, so
// the keyword list can reference targets that are still active.
func (s *KeywordService) GetArchivedItems(ctx context.Context, sc store.Scope) (*model.ArchivedItems, error) {
	targets, err := s.store.Targets().List(ctx, sc)
	if err != nil {
		return nil, err
	}

	archived := &model.ArchivedItems{
		MainTargets:      []*model.MainTarget{},
		RelevantKeywords: []model.ArchivedKeyword{},
	}
	for _, t := range targets {
		if t.IsDone {
			archived.MainTargets = append(archived.MainTargets, t)
		}
		for _, kw := range t.RelevantKeywords {
			if kw.IsDone {
				archived.RelevantKeywords = append(archived.RelevantKeywords, model.ArchivedKeyword{MainTarget: t.Name, Keyword: kw})
			}
		}
	}
	return archived, nil
}

// ExportData returns the full document for the scope.
func (s *KeywordService) ExportData(ctx context.Context, sc store.Scope) (*model.KeywordData, error) {
	targets, err := s.store.Targets().List(ctx, sc)
	if err != nil {
		return nil, err
	}
	folders, err := s.store.Folders().List(ctx, sc)
	if err != nil {
		return nil, err
	}
	doc := &model.KeywordData{MainTargets: targets, Folders: folders}
	if doc.MainTargets == nil {
		doc.MainTargets = []*model.MainTarget{}
	}
	if doc.Folders == nil {
		doc.Folders = []*model.Folder{}
	}
	return doc, nil
}

// ImportData replaces the entire working set with the given document. No
// merge is performed; callers decode and validate the document first (see
// model.DecodeDocument).
func (s *KeywordService) ImportData(ctx context.Context, sc store.Scope, doc *model.KeywordData) error {
	return s.store.Replace(ctx, sc, doc)
}
