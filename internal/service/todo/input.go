package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// CreateTodoInput holds the parameters for creating a todo. The matrix
// placement comes from either a Priority label or explicit coordinates;
// when both are absent the todo lands in the do_first quadrant.
type CreateTodoInput struct {
	Title       string
	Description *string
	Priority    string
	PositionX   *float64
	PositionY   *float64
	DueDate     *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateTodoInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > MaxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if i.Description != nil && len(*i.Description) > MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if i.Priority != "" && !domain.Priority(i.Priority).IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be one of do_first, schedule, delegate, eliminate"})
	}
	if i.Priority != "" && (i.PositionX != nil || i.PositionY != nil) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "provide either priority or position, not both"})
	}
	if (i.PositionX == nil) != (i.PositionY == nil) {
		errs = append(errs, domain.FieldError{Field: "position", Message: "position_x and position_y must be set together"})
	}
	if i.PositionX != nil && !validPosition(*i.PositionX) {
		errs = append(errs, domain.FieldError{Field: "position_x", Message: "must be between 0 and 100"})
	}
	if i.PositionY != nil && !validPosition(*i.PositionY) {
		errs = append(errs, domain.FieldError{Field: "position_y", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateTodoInput holds the parameters for a partial todo update.
// Nil fields are left unchanged. A pointer to the empty string on
// Description clears it; ClearDueDate removes the due date.
type UpdateTodoInput struct {
	TodoID       uuid.UUID
	Title        *string
	Description  *string
	Priority     string
	PositionX    *float64
	PositionY    *float64
	DueDate      *time.Time
	ClearDueDate bool
}

// Validate checks all fields and collects all errors.
func (i UpdateTodoInput) Validate() error {
	var errs []domain.FieldError

	if i.TodoID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "todo_id", Message: "required"})
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
	if i.Description != nil && len(*i.Description) > MaxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if i.Priority != "" && !domain.Priority(i.Priority).IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be one of do_first, schedule, delegate, eliminate"})
	}
	if i.Priority != "" && (i.PositionX != nil || i.PositionY != nil) {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "provide either priority or position, not both"})
	}
	if (i.PositionX == nil) != (i.PositionY == nil) {
		errs = append(errs, domain.FieldError{Field: "position", Message: "position_x and position_y must be set together"})
	}
	if i.PositionX != nil && !validPosition(*i.PositionX) {
		errs = append(errs, domain.FieldError{Field: "position_x", Message: "must be between 0 and 100"})
	}
	if i.PositionY != nil && !validPosition(*i.PositionY) {
		errs = append(errs, domain.FieldError{Field: "position_y", Message: "must be between 0 and 100"})
	}
	if i.DueDate != nil && i.ClearDueDate {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "cannot set and clear at once"})
	}

	if i.Title == nil && i.Description == nil && i.Priority == "" &&
		i.PositionX == nil && i.PositionY == nil && i.DueDate == nil && !i.ClearDueDate {
		errs = append(errs, domain.FieldError{Field: "update", Message: "no fields to update"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveTodoInput holds the parameters for a matrix drag.
type MoveTodoInput struct {
	TodoID    uuid.UUID
	PositionX float64
	PositionY float64
}

// Validate checks all fields and collects all errors.
func (i MoveTodoInput) Validate() error {
	var errs []domain.FieldError

	if i.TodoID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "todo_id", Message: "required"})
	}
	if !validPosition(i.PositionX) {
		errs = append(errs, domain.FieldError{Field: "position_x", Message: "must be between 0 and 100"})
	}
	if !validPosition(i.PositionY) {
		errs = append(errs, domain.FieldError{Field: "position_y", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
