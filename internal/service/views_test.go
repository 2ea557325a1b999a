package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinwords/keyword-backend/internal/model"
	"github.com/pinwords/keyword-backend/internal/store"
)

func TestSearchKeywords(t *testing.T) {
	svc, sc := newTestService(t)
	ctx := context.Background()

	summer, _ := svc.AddMainTarget(ctx, sc, "Summer Outfits", "")
	_, err := svc.AddRelevantKeywords(ctx, sc, summer.ID, []string{"Beach Dresses", "Sun Hats"})
	require.NoError(t, err)
	winter, _ := svc.AddMainTarget(ctx, sc, "Winter Coats", "")
	_, err = svc.AddRelevantKeywords(ctx, sc, winter.ID, []string{"Wool Scarves", "summer gloves"})
	require.NoError(t, err)

	matches, err := svc.SearchKeywords(ctx, sc, "SUMMER")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, model.SearchMatch{MainTarget: "Summer Outfits", Keyword: "Summer Outfits", Type: model.MatchMain}, matches[0])
	assert.Equal(t, model.SearchMatch{MainTarget: "Winter Coats", Keyword: "summer gloves", Type: model.MatchRelevant}, matches[1])

	matches, err = svc.SearchKeywords(ctx, sc, "no such thing")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestActiveAndArchivedPartition(t *testing.T) {
	svc, sc := newTestService(t)
	ctx := context.Background()

	// Target A stays active with one done keyword; target B is done.
	a, _ := svc.AddMainTarget(ctx, sc, "A", "")
	_, err := svc.AddRelevantKeywords(ctx, sc, a.ID, []string{"a1", "a2"})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleRelevantKeywordDone(ctx, sc, a.ID, "a2"))

	b, _ := svc.AddMainTarget(ctx, sc, "B", "")
	_, err = svc.AddRelevantKeywords(ctx, sc, b.ID, []string{"b1"})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleMainTargetDone(ctx, sc, b.ID))

	active, err := svc.GetActiveItems(ctx, sc)
	require.NoError(t, err)
	require.Len(t, active.MainTargets, 1)
	assert.Equal(t, "A", active.MainTargets[0].Name)
	require.Len(t, active.MainTargets[0].RelevantKeywords, 1)
	assert.Equal(t, "a1", active.MainTargets[0].RelevantKeywords[0].Text)

	archived, err := svc.GetArchivedItems(ctx, sc)
	require.NoError(t, err)
	require.Len(t, archived.MainTargets, 1)
	assert.Equal(t, "B", archived.MainTargets[0].Name)
	// a2 is archived even though its parent target is still active.
	require.Len(t, archived.RelevantKeywords, 1)
	assert.Equal(t, "A", archived.RelevantKeywords[0].MainTarget)
	assert.Equal(t, "a2", archived.RelevantKeywords[0].Keyword.Text)

	// The active view must not have filtered the stored document.
	stored, err := svc.GetMainTarget(ctx, sc, a.ID)
	require.NoError(t, err)
	assert.Len(t, stored.RelevantKeywords, 2)
}

func TestFolderAssignmentAndCascade(t *testing.T) {
	svc, sc := newTestService(t)
	ctx := context.Background()

	folder, err := svc.AddFolder(ctx, sc, "Recipes", "utensils", "#e60023")
	require.NoError(t, err)

	inFolder, _ := svc.AddMainTarget(ctx, sc, "Pasta", folder.ID)
	loose, _ := svc.AddMainTarget(ctx, sc, "Desserts", "")
	require.NoError(t, svc.MoveToFolder(ctx, sc, loose.ID, folder.ID))

	targets, _ := svc.ListMainTargets(ctx, sc)
	for _, target := range targets {
		assert.Equal(t, folder.ID, target.FolderID)
	}

	// Moving out with an empty id makes the target uncategorized.
	require.NoError(t, svc.MoveToFolder(ctx, sc, loose.ID, ""))
	got, _ := svc.GetMainTarget(ctx, sc, loose.ID)
	assert.Empty(t, got.FolderID)

	// Deleting the folder orphans its targets without deleting them.
	require.NoError(t, svc.DeleteFolder(ctx, sc, folder.ID))
	folders, err := svc.ListFolders(ctx, sc)
	require.NoError(t, err)
	assert.Empty(t, folders)
	got, err = svc.GetMainTarget(ctx, sc, inFolder.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FolderID)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, sc := newTestService(t)
	ctx := context.Background()

	folder, _ := svc.AddFolder(ctx, sc, "Travel", "", "")
	target, _ := svc.AddMainTarget(ctx, sc, "Japan Itinerary", folder.ID)
	_, err := svc.AddRelevantKeywords(ctx, sc, target.ID, []string{"Tokyo Food", "Kyoto Temples"})
	require.NoError(t, err)
	require.NoError(t, svc.ToggleRelevantKeywordDone(ctx, sc, target.ID, "Tokyo Food"))

	doc, err := svc.ExportData(ctx, sc)
	require.NoError(t, err)

	other := store.Scope{UserID: sc.UserID, ProjectID: "imported"}
	require.NoError(t, svc.ImportData(ctx, other, doc))

	imported, err := svc.ExportData(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, doc, imported)

	// Import replaces, never merges.
	require.NoError(t, svc.ImportData(ctx, other, &model.KeywordData{
		MainTargets: []*model.MainTarget{},
		Folders:     []*model.Folder{},
	}))
	empty, err := svc.ExportData(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, empty.MainTargets)
	assert.Empty(t, empty.Folders)

	// The source scope is untouched.
	src, err := svc.ExportData(ctx, sc)
	require.NoError(t, err)
	assert.Len(t, src.MainTargets, 1)
}
