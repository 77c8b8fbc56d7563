package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

const priorityDescription = "Eisenhower quadrant: do_first (urgent and important), schedule (important), delegate (urgent), eliminate (neither). Defaults to do_first."

func (a *Agent) registerTodoTools(reg *Registry, userID uuid.UUID) {
	reg.register(domain.ToolSpec{
		Name:        "createTodo",
		Description: "Create a todo placed on the priority matrix.",
		Properties: map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short task title.",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Longer task details.",
			},
			"priority": map[string]any{
				"type":        "string",
				"enum":        []string{"do_first", "schedule", "delegate", "eliminate"},
				"description": priorityDescription,
			},
			"dueDate": map[string]any{
				"type":        "string",
				"description": "Absolute ISO 8601 due instant or date.",
			},
		},
		Required: []string{"title"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.createTodo(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "updateTodo",
		Description: "Update the pending todo best matching a search query. Only the provided fields change.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the todo by; matches title or description.",
			},
			"newTitle": map[string]any{
				"type":        "string",
				"description": "New title.",
			},
			"newDescription": map[string]any{
				"type":        "string",
				"description": "New details.",
			},
			"priority": map[string]any{
				"type":        "string",
				"enum":        []string{"do_first", "schedule", "delegate", "eliminate"},
				"description": priorityDescription,
			},
			"dueDate": map[string]any{
				"type":        "string",
				"description": "Absolute ISO 8601 due instant or date.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.updateTodo(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "completeTodo",
		Description: "Mark the pending todo best matching a search query as completed.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the todo by; matches title or description.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.completeTodo(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "deleteTodo",
		Description: "Permanently delete the todo best matching a search query, whatever its status.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the todo by; matches title or description.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.deleteTodo(ctx, userID, args)
	})
}

func (a *Agent) createTodo(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "createTodo"

	title := stringArg(args, "title")
	if title == "" {
		return domain.NewToolError(action, "title is required")
	}

	dueDate, err := timeArg(args, "dueDate")
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	priority := domain.ParsePriority(stringArg(args, "priority"))
	x, y := priority.Position()

	todo, err := a.todos.Create(ctx, userID, &domain.Todo{
		Title:       title,
		Description: optStringArg(args, "description"),
		Status:      domain.TodoStatusPending,
		PositionX:   x,
		PositionY:   y,
		DueDate:     dueDate,
	})
	if err != nil {
		return domain.NewToolError(action, "create todo: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Created todo %q (%s).", todo.Title, priority), map[string]any{
		"id":       todo.ID.String(),
		"title":    todo.Title,
		"priority": priority.String(),
	})
}

func (a *Agent) updateTodo(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "updateTodo"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	newTitle := optStringArg(args, "newTitle")
	newDescription := optStringArg(args, "newDescription")
	priorityRaw := stringArg(args, "priority")
	dueDate, err := timeArg(args, "dueDate")
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}
	if newTitle == nil && newDescription == nil && priorityRaw == "" && dueDate == nil {
		return domain.NewToolError(action, "nothing to change: provide newTitle, newDescription, priority, or dueDate")
	}

	todo, err := a.resolve.pendingTodo(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	params := domain.TodoUpdateParams{
		Title:       newTitle,
		Description: newDescription,
		DueDate:     dueDate,
	}
	if priorityRaw != "" {
		x, y := domain.ParsePriority(priorityRaw).Position()
		params.PositionX = &x
		params.PositionY = &y
	}

	updated, err := a.todos.Update(ctx, userID, todo.ID, params)
	if err != nil {
		return domain.NewToolError(action, "update todo: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Updated todo %q.", updated.Title), map[string]any{
		"id":    updated.ID.String(),
		"title": updated.Title,
	})
}

func (a *Agent) completeTodo(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "completeTodo"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	todo, err := a.resolve.pendingTodo(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	completed, err := a.todos.Complete(ctx, userID, todo.ID)
	if err != nil {
		return domain.NewToolError(action, "complete todo: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Completed %q.", completed.Title), map[string]any{
		"title": completed.Title,
	})
}

func (a *Agent) deleteTodo(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "deleteTodo"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	todo, err := a.resolve.todo(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	if err := a.todos.Delete(ctx, userID, todo.ID); err != nil {
		return domain.NewToolError(action, "delete todo: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Deleted todo %q.", todo.Title), map[string]any{
		"title": todo.Title,
	})
}
