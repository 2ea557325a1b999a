package model

import "time"

// Priority ranks a main target. Stored lowercase on the wire.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// RelevantKeyword is a secondary keyword attached to one main target.
// It is embedded in its parent and not independently addressable.
type RelevantKeyword struct {
	Text        string     `json:"text"`
	IsDone      bool       `json:"isDone"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// MainTarget is a primary keyword with its cluster of relevant keywords.
// The order of RelevantKeywords is user-controlled and meaningful.
type MainTarget struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	RelevantKeywords []RelevantKeyword `json:"relevantKeywords"`
	IsDone           bool              `json:"isDone"`
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
	Priority         Priority          `json:"priority"`
	Category         string            `json:"category,omitempty"`
	FolderID         string            `json:"folderId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Folder groups main targets. Targets hold a weak back-reference via FolderID;
// deleting a folder never deletes its targets.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// KeywordData is the aggregate document: everything one user keeps in one
// project. MainTargets array order is the display order.
type KeywordData struct {
	MainTargets []*MainTarget `json:"mainTargets"`
	Folders     []*Folder     `json:"folders"`
}

// BulkAddResult classifies each input line of a bulk keyword add.
type BulkAddResult struct {
	Added      []string `json:"added"`
	Duplicates []string `json:"duplicates"`
	Skipped    []string `json:"skipped"`
}

// MatchType tags a search result as a main-target or relevant-keyword hit.
type MatchType string

const (
	MatchMain     MatchType = "main"
	MatchRelevant MatchType = "relevant"
)

// SearchMatch is one hit from a keyword search.
type SearchMatch struct {
	MainTarget string    `json:"mainTarget"`
	Keyword    string    `json:"keyword"`
	Type       MatchType `json:"type"`
}

// ActiveItems holds the not-done view: targets with IsDone=false, each with
// its keyword list filtered down to IsDone=false entries.
type ActiveItems struct {
	MainTargets []*MainTarget `json:"mainTargets"`
}

// ArchivedKeyword pairs a done keyword with the name of its parent target.
// The parent may itself still be active; the two done flags are independent.
type ArchivedKeyword struct {
	MainTarget string          `json:"mainTarget"`
	Keyword    RelevantKeyword `json:"keyword"`
}

// ArchivedItems holds the done view as two separate lists.
type ArchivedItems struct {
	MainTargets      []*MainTarget     `json:"mainTargets"`
	RelevantKeywords []ArchivedKeyword `json:"relevantKeywords"`
}

// TargetUpdate carries a partial update for a main target. Nil fields are
// left untouched. CompletedAt is applied only when IsDone is also set;
// passing IsDone with a nil CompletedAt clears the stored timestamp. An
// empty-string FolderID clears the folder assignment.
type TargetUpdate struct {
	Name        *string
	Keywords    *[]RelevantKeyword
	IsDone      *bool
	CompletedAt *time.Time
	Priority    *Priority
	Category    *string
	FolderID    *string
}

// IsZero reports whether the update carries no fields.
func (u TargetUpdate) IsZero() bool {
	return u.Name == nil && u.Keywords == nil && u.IsDone == nil &&
		u.Priority == nil && u.Category == nil && u.FolderID == nil
}

// FolderUpdate carries a partial update for a folder. Nil fields are left
// untouched.
type FolderUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}
