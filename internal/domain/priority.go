package domain

// Priority is an Eisenhower matrix quadrant label.
type Priority string

const (
	PriorityDoFirst   Priority = "do_first"  // urgent and important
	PrioritySchedule  Priority = "schedule"  // important, not urgent
	PriorityDelegate  Priority = "delegate"  // urgent, not important
	PriorityEliminate Priority = "eliminate" // neither
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityDoFirst, PrioritySchedule, PriorityDelegate, PriorityEliminate:
		return true
	}
	return false
}

// ParsePriority maps a raw label to a Priority. Unknown or empty labels
// default to do_first so that a vague command still lands in the most
// visible quadrant.
func ParsePriority(s string) Priority {
	p := Priority(s)
	if !p.IsValid() {
		return PriorityDoFirst
	}
	return p
}

// Position returns the canonical matrix coordinates for a priority.
// Each quadrant gets a fixed point well inside its region rather than a
// corner, so todos placed by label sit visually clear of the axes.
func (p Priority) Position() (x, y float64) {
	switch p {
	case PrioritySchedule:
		return 85, 15
	case PriorityDelegate:
		return 15, 85
	case PriorityEliminate:
		return 85, 85
	default:
		return 15, 15
	}
}

// PriorityFromPosition maps matrix coordinates back to a quadrant label.
// The axes sit at 50: x < 50 reads as urgent, y < 50 reads as important.
// Points exactly on an axis fall into the not-urgent / not-important side.
func PriorityFromPosition(x, y float64) Priority {
	urgent := x < 50
	important := y < 50

	switch {
	case urgent && important:
		return PriorityDoFirst
	case important:
		return PrioritySchedule
	case urgent:
		return PriorityDelegate
	default:
		return PriorityEliminate
	}
}
