package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

// composePrompt builds the system instruction for one invocation: who the
// assistant is, the current local time, how to pick between the four
// concept classes, datetime rules, the numbered data snapshot, and the
// calendar availability note.
func composePrompt(snap *Snapshot, now time.Time, loc *time.Location, calendarReady bool) string {
	local := now.In(loc)

	var b strings.Builder

	b.WriteString("You are Daybook, a personal productivity assistant. You manage the user's notes, reminders, todos, and calendar by calling tools.\n\n")

	fmt.Fprintf(&b, "Current time: %s (UTC%s)\n\n",
		local.Format("Monday, 2006-01-02 15:04"),
		local.Format("-07:00"),
	)

	b.WriteString(`Classify what the user wants before picking a tool:
- Calendar event: a scheduled activity at a specific time or place ("meeting", "appointment", "schedule", "put it on my calendar"). Handled only by the calendar tools.
- Reminder: the user wants to be notified at some moment ("remind me", "don't let me forget").
- Todo: an actionable task to track and prioritize ("I need to", "task", "add to my list").
- Note: information to keep, with no time attached ("note down", "write this down", "remember that").

One user request may require several tool calls in sequence. Make every call needed before writing your final reply.

Dates and times: resolve relative expressions ("tomorrow at 3pm", "in two hours", "next Friday") against the current time above, then pass absolute ISO 8601 instants with offset to tools, e.g. 2026-03-14T15:00:00+01:00. Never pass a relative expression to a tool.

`)

	writeNotesSection(&b, snap.Notes)
	writeRemindersSection(&b, snap.Reminders, loc)
	writeTodosSection(&b, snap.Todos, loc)
	writeTagsSection(&b, snap.Tags)
	writeIntegrationsSection(&b, snap.Integrations)

	if calendarReady {
		b.WriteString("Calendar tools are connected and available for event operations.\n")
	} else {
		b.WriteString("No calendar is connected. If the user asks for a calendar event, do not substitute another tool; reply that they should connect their calendar first.\n")
	}

	return b.String()
}

func writeNotesSection(b *strings.Builder, notes []*domain.Note) {
	b.WriteString("Notes (most recently updated first):\n")
	if len(notes) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for i, n := range notes {
		preview := n.Preview(notePreviewChars)
		if len(n.Content) > notePreviewChars {
			preview += "..."
		}
		fmt.Fprintf(b, "%d. [%s] %q: %s\n", i+1, n.ID, n.Title, preview)
	}
	b.WriteString("\n")
}

func writeRemindersSection(b *strings.Builder, reminders []*domain.Reminder, loc *time.Location) {
	b.WriteString("Reminders (most recent first):\n")
	if len(reminders) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for i, r := range reminders {
		when := "unscheduled"
		if r.RemindAt != nil {
			when = r.RemindAt.In(loc).Format(time.RFC3339)
		}
		fmt.Fprintf(b, "%d. [%s] %q at %s, %s\n", i+1, r.ID, r.Message, when, r.Status)
	}
	b.WriteString("\n")
}

func writeTodosSection(b *strings.Builder, todos []*domain.Todo, loc *time.Location) {
	b.WriteString("Pending todos (most recent first):\n")
	if len(todos) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for i, t := range todos {
		fmt.Fprintf(b, "%d. [%s] %q (%s)", i+1, t.ID, t.Title, t.Priority())
		if t.DueDate != nil {
			fmt.Fprintf(b, ", due %s", t.DueDate.In(loc).Format(time.RFC3339))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeTagsSection(b *strings.Builder, tags []*domain.Tag) {
	b.WriteString("Tags:\n")
	if len(tags) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for i, t := range tags {
		fmt.Fprintf(b, "%d. [%s] %s\n", i+1, t.ID, t.Name)
	}
	b.WriteString("\n")
}

func writeIntegrationsSection(b *strings.Builder, integrations []*domain.Integration) {
	b.WriteString("Active integrations:\n")
	if len(integrations) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for i, integ := range integrations {
		fmt.Fprintf(b, "%d. %s\n", i+1, integ.Provider)
	}
	b.WriteString("\n")
}
