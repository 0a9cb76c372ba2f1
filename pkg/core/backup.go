package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Backup is the export document: every note plus the whole image bucket.
type Backup struct {
	Notes  []Note            `json:"notes"`
	Images map[string]string `json:"images"`
}

// BackupFileName returns the conventional export file name for the UTC date
// of t, e.g. myflomo-backup-2024-05-01.json.
func BackupFileName(t time.Time) string {
	return "myflomo-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

// WriteTo encodes the backup as indented JSON.
func (b Backup) WriteTo(w io.Writer) (int64, error) {
	if b.Notes == nil {
		b.Notes = []Note{}
	}
	if b.Images == nil {
		b.Images = map[string]string{}
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// ParseBackup validates and decodes an export document. Comments and
// trailing commas are tolerated. Any shape error is reported as
// ErrImportFormat and nothing is returned.
func ParseBackup(data []byte) (Backup, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(standard, &root); err != nil {
		return Backup{}, fmt.Errorf("%w: document must be an object: %v", ErrImportFormat, err)
	}

	rawNotes, ok := root["notes"]
	if !ok || !isJSONKind(rawNotes, '[') {
		return Backup{}, fmt.Errorf("%w: notes must be an array", ErrImportFormat)
	}
	rawImages, ok := root["images"]
	if !ok || !isJSONKind(rawImages, '{') {
		return Backup{}, fmt.Errorf("%w: images must be an object", ErrImportFormat)
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(rawNotes, &entries); err != nil {
		return Backup{}, fmt.Errorf("%w: notes must contain objects: %v", ErrImportFormat, err)
	}

	notes := make([]Note, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		n, err := decodeBackupNote(entry)
		if err != nil {
			return Backup{}, fmt.Errorf("%w: notes[%d]: %v", ErrImportFormat, i, err)
		}
		if _, dup := seen[n.ID]; dup {
			return Backup{}, fmt.Errorf("%w: notes[%d]: duplicate id %q", ErrImportFormat, i, n.ID)
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}

	var images map[string]string
	if err := json.Unmarshal(rawImages, &images); err != nil {
		return Backup{}, fmt.Errorf("%w: images must map references to strings: %v", ErrImportFormat, err)
	}
	if images == nil {
		images = map[string]string{}
	}

	return Backup{Notes: notes, Images: images}, nil
}

func decodeBackupNote(entry map[string]json.RawMessage) (Note, error) {
	for _, field := range []string{"id", "content", "createdAt"} {
		if _, ok := entry[field]; !ok {
			return Note{}, fmt.Errorf("missing field %q", field)
		}
	}

	var n Note
	if err := json.Unmarshal(entry["id"], &n.ID); err != nil || strings.TrimSpace(n.ID) == "" {
		return Note{}, fmt.Errorf("id must be a non-empty string")
	}
	if err := json.Unmarshal(entry["content"], &n.Content); err != nil {
		return Note{}, fmt.Errorf("content must be a string")
	}
	if err := json.Unmarshal(entry["createdAt"], &n.CreatedAt); err != nil {
		return Note{}, fmt.Errorf("createdAt: %v", err)
	}
	n.UpdatedAt = n.CreatedAt
	if raw, ok := entry["updatedAt"]; ok {
		if err := json.Unmarshal(raw, &n.UpdatedAt); err != nil {
			return Note{}, fmt.Errorf("updatedAt: %v", err)
		}
	}
	return n.normalize(), nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}

// Export snapshots the current notes and image bucket.
func (s *Service) Export(ctx context.Context) Backup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Backup{
		Notes:  cloneNotes(s.notes),
		Images: maps.Clone(s.images),
	}
}

// Import validates data and, only if it is well formed, replaces the whole
// note collection and image bucket with its contents. No merge is done.
func (s *Service) Import(ctx context.Context, data []byte) (Backup, error) {
	b, err := ParseBackup(data)
	if err != nil {
		return Backup{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Backup{}, ErrReadOnly
	}

	s.notes = cloneNotes(b.Notes)
	s.images = maps.Clone(b.Images)
	s.persistNotes(ctx)
	s.persistImages(ctx)
	for _, n := range s.notes {
		s.rememberTags(ctx, n.Tags)
	}

	s.logger.Info("backup imported", "notes", len(b.Notes), "images", len(b.Images))
	return b, nil
}
