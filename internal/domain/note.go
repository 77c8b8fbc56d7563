package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user's free-form note, optionally pinned and tagged.
type Note struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Content   string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	Tags []Tag
}

// IsDeleted returns true if the note has been soft-deleted (moved to trash).
func (n *Note) IsDeleted() bool {
	return n.DeletedAt != nil
}

// Preview returns the first max characters of the note content.
// Used for bounded context snapshots.
func (n *Note) Preview(max int) string {
	if max <= 0 || len(n.Content) <= max {
		return n.Content
	}
	return n.Content[:max]
}

// NoteUpdateParams holds optional note fields for partial updates.
// Nil means "leave unchanged".
type NoteUpdateParams struct {
	Title   *string
	Content *string
	Pinned  *bool
}

// Tag is a user-defined label for organizing notes.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagUpdateParams holds optional tag fields for partial updates.
// Nil means "leave unchanged".
type TagUpdateParams struct {
	Name  *string
	Color *string
}
