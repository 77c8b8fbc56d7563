package note

import (
	"strings"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// CreateNoteInput holds the parameters for creating a note.
// Tags are names; only names matching the owner's existing tags
// (case-insensitively) are linked, the rest are skipped.
type CreateNoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// Validate checks all fields and collects all errors.
func (i CreateNoteInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > MaxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if len(i.Content) > MaxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 50000 characters"})
	}
	if len(i.Tags) > MaxTagsPerNote {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 20 tags"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateNoteInput holds the parameters for a partial note update.
// Nil fields are left unchanged; a non-nil empty Tags slice clears
// all tag links.
type UpdateNoteInput struct {
	NoteID  uuid.UUID
	Title   *string
	Content *string
	Pinned  *bool
	Tags    *[]string
}

// Validate checks all fields and collects all errors.
func (i UpdateNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "note_id", Message: "required"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "cannot be empty"})
		}
		if len(title) > MaxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if i.Content != nil && len(*i.Content) > MaxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 50000 characters"})
	}
	if i.Tags != nil && len(*i.Tags) > MaxTagsPerNote {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 20 tags"})
	}
	if i.Title == nil && i.Content == nil && i.Pinned == nil && i.Tags == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "no fields to update"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
