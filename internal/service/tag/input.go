package tag

import (
	"strings"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// CreateTagInput holds parameters for tag creation.
type CreateTagInput struct {
	Name  string
	Color string
}

// Validate validates the create input.
func (i CreateTagInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(name) > MaxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 50 characters"})
	}

	if i.Color != "" && !isHexColor(i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a hex color like #aabbcc"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateTagInput holds parameters for partial tag updates.
// Nil fields are left unchanged; a pointer to the empty string on Color
// clears it.
type UpdateTagInput struct {
	TagID uuid.UUID

	Name  *string
	Color *string
}

// Validate validates the update input.
func (i UpdateTagInput) Validate() error {
	var errs []domain.FieldError

	if i.TagID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tag_id", Message: "required"})
	}

	if i.Name == nil && i.Color == nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "no fields to update"})
	}

	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
		} else if len(name) > MaxNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 50 characters"})
		}
	}

	if i.Color != nil && *i.Color != "" && !isHexColor(*i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a hex color like #aabbcc"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// isHexColor reports whether s is a 6-digit hex color with a leading '#'.
func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
