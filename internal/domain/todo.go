package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a task positioned on the Eisenhower matrix.
// PositionX and PositionY are percentages in [0,100]; lower X means more
// urgent, lower Y means more important.
type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description *string
	Status      TodoStatus
	PositionX   float64
	PositionY   float64
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCompleted returns true if the todo has been completed.
func (t *Todo) IsCompleted() bool {
	return t.Status == TodoStatusCompleted
}

// Priority returns the matrix quadrant the todo currently sits in.
func (t *Todo) Priority() Priority {
	return PriorityFromPosition(t.PositionX, t.PositionY)
}

// TodoUpdateParams holds optional todo fields for partial updates.
// Nil means "leave unchanged"; a pointer to the empty string on
// Description clears it, a pointer to the zero time on DueDate clears it.
type TodoUpdateParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	PositionX   *float64
	PositionY   *float64
}

// TodoStatus is the lifecycle state of a todo.
type TodoStatus string

const (
	TodoStatusPending   TodoStatus = "pending"
	TodoStatusCompleted TodoStatus = "completed"
)

func (s TodoStatus) String() string { return string(s) }

func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoStatusPending, TodoStatusCompleted:
		return true
	}
	return false
}
