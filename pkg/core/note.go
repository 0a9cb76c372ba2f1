package core

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/aretw0/myflomo/pkg/content"
)

// Note is the central entity of the domain: a single user-authored text
// entry. Tags are always derived from Content and never set independently.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// HasTag reports whether tag is one of the note's tags.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a copy that shares no memory with n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}

// normalize re-derives Tags from Content and clamps UpdatedAt so that
// UpdatedAt >= CreatedAt.
func (n Note) normalize() Note {
	n.Tags = content.ExtractTags(n.Content)
	if n.UpdatedAt < n.CreatedAt {
		n.UpdatedAt = n.CreatedAt
	}
	return n
}

// storedNote is the persisted shape of a Note with its timestamps left raw,
// so a damaged timestamp costs one field instead of the whole note.
type storedNote struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// decodeStoredNote decodes one persisted note. An unreadable timestamp falls
// back to the note's other timestamp, or 0; repaired reports that it did.
func decodeStoredNote(raw json.RawMessage) (n Note, repaired bool, err error) {
	var sn storedNote
	if err := json.Unmarshal(raw, &sn); err != nil {
		return Note{}, false, err
	}
	if sn.ID == "" {
		return Note{}, false, errors.New("stored note has no id")
	}

	created, createdOK := decodeRawTimestamp(sn.CreatedAt)
	updated, updatedOK := decodeRawTimestamp(sn.UpdatedAt)
	if !createdOK {
		created = updated
	}
	if !updatedOK {
		updated = created
	}

	n = Note{
		ID:        sn.ID,
		Content:   sn.Content,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	return n, !createdOK || !updatedOK, nil
}

func decodeRawTimestamp(raw json.RawMessage) (Timestamp, bool) {
	if len(raw) == 0 {
		return 0, true
	}
	var ts Timestamp
	if err := ts.UnmarshalJSON(raw); err != nil {
		return 0, false
	}
	return ts, true
}
