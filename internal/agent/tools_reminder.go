package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

func (a *Agent) registerReminderTools(reg *Registry, userID uuid.UUID) {
	reg.register(domain.ToolSpec{
		Name:        "createReminder",
		Description: "Create a reminder that notifies the user at a given time. Use null remindAt for a reminder without a time.",
		Properties: map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "What to remind the user about.",
			},
			"remindAt": map[string]any{
				"type":        []string{"string", "null"},
				"description": "Absolute ISO 8601 instant to fire at, or null.",
			},
			"notifyVia": map[string]any{
				"type":        "string",
				"enum":        []string{"email", "push", "both"},
				"description": "Delivery channel. Defaults to both.",
			},
		},
		Required: []string{"message"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.createReminder(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "cancelReminder",
		Description: "Cancel the pending reminder best matching a search query.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the reminder by; matches its message.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.cancelReminder(ctx, userID, args)
	})
}

func (a *Agent) createReminder(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "createReminder"

	message := stringArg(args, "message")
	if message == "" {
		return domain.NewToolError(action, "message is required")
	}

	remindAt, err := timeArg(args, "remindAt")
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	notify := domain.DefaultNotifyVia
	if raw := stringArg(args, "notifyVia"); raw != "" {
		notify = domain.NotifyVia(raw)
		if !notify.IsValid() {
			return domain.NewToolError(action, "notifyVia must be one of email, push, both")
		}
	}

	rem, err := a.reminders.Create(ctx, userID, &domain.Reminder{
		Message:    message,
		RemindAt:   remindAt,
		NotifyVia:  notify,
		Status:     domain.ReminderStatusPending,
		Recurrence: domain.RecurrenceNone,
	})
	if err != nil {
		return domain.NewToolError(action, "create reminder: "+err.Error())
	}

	data := map[string]any{
		"id":        rem.ID.String(),
		"message":   rem.Message,
		"remindAt":  nil,
		"notifyVia": rem.NotifyVia.String(),
	}
	if rem.RemindAt != nil {
		data["remindAt"] = rem.RemindAt.Format(time.RFC3339)
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Created reminder %q.", rem.Message), data)
}

func (a *Agent) cancelReminder(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "cancelReminder"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	rem, err := a.resolve.pendingReminder(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	if err := a.reminders.UpdateStatus(ctx, userID, rem.ID,
		domain.ReminderStatusPending, domain.ReminderStatusCancelled); err != nil {
		return domain.NewToolError(action, "cancel reminder: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Cancelled reminder %q.", rem.Message), map[string]any{
		"message": rem.Message,
	})
}
