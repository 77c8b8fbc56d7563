package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
)

func (a *Agent) registerNoteTools(reg *Registry, userID uuid.UUID) {
	reg.register(domain.ToolSpec{
		Name:        "createNote",
		Description: "Create a new note with a title and content. Optionally attach the user's existing tags by name; names that match no existing tag are ignored.",
		Properties: map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short note title.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Full note body.",
			},
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Names of existing tags to attach.",
			},
		},
		Required: []string{"title", "content"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.createNote(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "editNote",
		Description: "Edit the note best matching a search query. Can rename it, replace its content, or append to it.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the note by; matches title or content.",
			},
			"newTitle": map[string]any{
				"type":        "string",
				"description": "New title, if renaming.",
			},
			"newContent": map[string]any{
				"type":        "string",
				"description": "Replacement content. Overwrites the existing body.",
			},
			"appendContent": map[string]any{
				"type":        "string",
				"description": "Content to append to the existing body.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.editNote(ctx, userID, args)
	})

	reg.register(domain.ToolSpec{
		Name:        "deleteNote",
		Description: "Permanently delete the note best matching a search query.",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Text to find the note by; matches title or content.",
			},
		},
		Required: []string{"query"},
	}, func(ctx context.Context, args map[string]any) domain.ToolExecutionResult {
		return a.deleteNote(ctx, userID, args)
	})
}

func (a *Agent) createNote(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "createNote"

	title := stringArg(args, "title")
	if title == "" {
		return domain.NewToolError(action, "title is required")
	}
	content := stringArg(args, "content")

	var matched []*domain.Tag
	if names := stringListArg(args, "tags"); len(names) > 0 {
		var err error
		matched, err = a.tags.FindByNamesInsensitive(ctx, userID, names)
		if err != nil {
			return domain.NewToolError(action, "look up tags: "+err.Error())
		}
	}

	var note *domain.Note
	err := a.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		note, createErr = a.notes.Create(txCtx, userID, &domain.Note{
			Title:   title,
			Content: content,
		})
		if createErr != nil {
			return createErr
		}
		if len(matched) == 0 {
			return nil
		}
		tagIDs := make([]uuid.UUID, len(matched))
		for i, t := range matched {
			tagIDs[i] = t.ID
		}
		return a.tags.ReplaceNoteTags(txCtx, note.ID, tagIDs)
	})
	if err != nil {
		return domain.NewToolError(action, "create note: "+err.Error())
	}

	tagNames := make([]string, len(matched))
	for i, t := range matched {
		tagNames[i] = t.Name
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Created note %q.", note.Title), map[string]any{
		"id":    note.ID.String(),
		"title": note.Title,
		"tags":  tagNames,
	})
}

func (a *Agent) editNote(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "editNote"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	newTitle := optStringArg(args, "newTitle")
	newContent := optStringArg(args, "newContent")
	appendContent := optStringArg(args, "appendContent")
	if newTitle == nil && newContent == nil && appendContent == nil {
		return domain.NewToolError(action, "nothing to change: provide newTitle, newContent, or appendContent")
	}

	note, err := a.resolve.note(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	params := domain.NoteUpdateParams{Title: newTitle}
	switch {
	case appendContent != nil:
		combined := note.Content
		if combined != "" {
			combined += "\n\n"
		}
		combined += *appendContent
		params.Content = &combined
	case newContent != nil:
		params.Content = newContent
	}

	updated, err := a.notes.Update(ctx, userID, note.ID, params)
	if err != nil {
		return domain.NewToolError(action, "update note: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Updated note %q.", updated.Title), map[string]any{
		"id":    updated.ID.String(),
		"title": updated.Title,
	})
}

func (a *Agent) deleteNote(ctx context.Context, userID uuid.UUID, args map[string]any) domain.ToolExecutionResult {
	const action = "deleteNote"

	query := stringArg(args, "query")
	if query == "" {
		return domain.NewToolError(action, "query is required")
	}

	note, err := a.resolve.note(ctx, userID, query)
	if err != nil {
		return domain.NewToolError(action, err.Error())
	}

	if err := a.notes.HardDelete(ctx, userID, note.ID); err != nil {
		return domain.NewToolError(action, "delete note: "+err.Error())
	}

	return domain.NewToolSuccess(action, fmt.Sprintf("Deleted note %q.", note.Title), map[string]any{
		"title": note.Title,
	})
}
