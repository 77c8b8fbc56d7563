package domain

import "testing"

func TestPriority_Position(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority Priority
		wantX    float64
		wantY    float64
	}{
		{PriorityDoFirst, 15, 15},
		{PrioritySchedule, 85, 15},
		{PriorityDelegate, 15, 85},
		{PriorityEliminate, 85, 85},
		{Priority("bogus"), 15, 15},
		{Priority(""), 15, 15},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			t.Parallel()
			x, y := tt.priority.Position()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Priority(%q).Position() = (%v, %v), want (%v, %v)",
					tt.priority, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestParsePriority_UnknownDefaultsToDoFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Priority
	}{
		{"do_first", PriorityDoFirst},
		{"schedule", PrioritySchedule},
		{"delegate", PriorityDelegate},
		{"eliminate", PriorityEliminate},
		{"", PriorityDoFirst},
		{"urgent", PriorityDoFirst},
		{"DO_FIRST", PriorityDoFirst},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityFromPosition_Quadrants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x, y float64
		want Priority
	}{
		{"urgent important", 15, 15, PriorityDoFirst},
		{"important only", 85, 15, PrioritySchedule},
		{"urgent only", 15, 85, PriorityDelegate},
		{"neither", 85, 85, PriorityEliminate},
		{"origin", 0, 0, PriorityDoFirst},
		{"far corner", 100, 100, PriorityEliminate},
		{"just inside urgent important", 49.9, 49.9, PriorityDoFirst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PriorityFromPosition(tt.x, tt.y); got != tt.want {
				t.Errorf("PriorityFromPosition(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// The axes at 50 belong to the not-urgent / not-important side.
func TestPriorityFromPosition_Boundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x, y float64
		want Priority
	}{
		{"x on axis", 50, 15, PrioritySchedule},
		{"y on axis", 15, 50, PriorityDelegate},
		{"both on axis", 50, 50, PriorityEliminate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PriorityFromPosition(tt.x, tt.y); got != tt.want {
				t.Errorf("PriorityFromPosition(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPriority_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []Priority{PriorityDoFirst, PrioritySchedule, PriorityDelegate, PriorityEliminate} {
		x, y := p.Position()
		if got := PriorityFromPosition(x, y); got != p {
			t.Errorf("round trip for %q: Position() = (%v, %v), mapped back to %q", p, x, y, got)
		}
	}
}

func TestPriority_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityDoFirst, true},
		{PrioritySchedule, true},
		{PriorityDelegate, true},
		{PriorityEliminate, true},
		{Priority("later"), false},
		{Priority(""), false},
	}
	for _, tt := range tests {
		if got := tt.priority.IsValid(); got != tt.want {
			t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}
