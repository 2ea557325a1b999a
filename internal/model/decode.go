package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DecodeDocument parses a persisted or imported KeywordData document and
// normalizes it to the current schema. Older documents stored relevant
// keywords as bare strings; those are upgraded to RelevantKeyword records
// with IsDone=false. Missing priority defaults to medium and a missing
// folders array becomes empty. A document without a mainTargets array, or a
// keyword entry that is neither a string nor an object, is a decode error.
func DecodeDocument(data []byte) (*KeywordData, error) {
	var wire struct {
		MainTargets *[]targetWire `json:"mainTargets"`
		Folders     []*Folder     `json:"folders"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode keyword document: %w", err)
	}
	if wire.MainTargets == nil {
		return nil, fmt.Errorf("decode keyword document: %w: mainTargets must be an array", ErrValidation)
	}

	doc := &KeywordData{
		MainTargets: make([]*MainTarget, 0, len(*wire.MainTargets)),
		Folders:     wire.Folders,
	}
	if doc.Folders == nil {
		doc.Folders = []*Folder{}
	}
	for i := range *wire.MainTargets {
		t, err := (*wire.MainTargets)[i].normalize()
		if err != nil {
			return nil, err
		}
		doc.MainTargets = append(doc.MainTargets, t)
	}
	return doc, nil
}

// EncodeDocument serializes a KeywordData document. Date fields marshal as
// RFC 3339 strings, the shape DecodeDocument reads back.
func EncodeDocument(doc *KeywordData) ([]byte, error) {
	return json.Marshal(doc)
}

type targetWire struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	RelevantKeywords []json.RawMessage `json:"relevantKeywords"`
	IsDone           bool              `json:"isDone"`
	CompletedAt      *time.Time        `json:"completedAt"`
	Priority         string            `json:"priority"`
	Category         string            `json:"category"`
	FolderID         string            `json:"folderId"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func (w *targetWire) normalize() (*MainTarget, error) {
	t := &MainTarget{
		ID:               w.ID,
		Name:             w.Name,
		RelevantKeywords: make([]RelevantKeyword, 0, len(w.RelevantKeywords)),
		IsDone:           w.IsDone,
		CompletedAt:      w.CompletedAt,
		Priority:         Priority(w.Priority),
		Category:         w.Category,
		FolderID:         w.FolderID,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	for _, raw := range w.RelevantKeywords {
		kw, err := decodeKeyword(raw)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", w.Name, err)
		}
		t.RelevantKeywords = append(t.RelevantKeywords, kw)
	}
	return t, nil
}

func decodeKeyword(raw json.RawMessage) (RelevantKeyword, error) {
	// Legacy documents stored plain strings.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return RelevantKeyword{Text: s}, nil
	}
	var kw RelevantKeyword
	if err := json.Unmarshal(raw, &kw); err != nil {
		return RelevantKeyword{}, fmt.Errorf("%w: relevant keyword must be a string or object", ErrValidation)
	}
	return kw, nil
}
