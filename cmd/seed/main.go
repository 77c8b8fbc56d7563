// Command seed inserts a demo account with sample notes, tags, todos, and
// reminders. Running it twice is safe: if the demo user already exists the
// command exits without touching anything.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	notepg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/note"
	reminderpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/reminder"
	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	todopg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/todo"
	userpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/user"
	"github.com/daybookhq/daybook-backend/internal/app"
	"github.com/daybookhq/daybook-backend/internal/auth"
	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/domain"
	authsvc "github.com/daybookhq/daybook-backend/internal/service/auth"
	notesvc "github.com/daybookhq/daybook-backend/internal/service/note"
	remindersvc "github.com/daybookhq/daybook-backend/internal/service/reminder"
	tagsvc "github.com/daybookhq/daybook-backend/internal/service/tag"
	todosvc "github.com/daybookhq/daybook-backend/internal/service/todo"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

const (
	demoEmail    = "demo@daybook.dev"
	demoPassword = "demo-password-1"
)

func ptr[T any](v T) *T { return &v }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, logger, pool, cfg); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Info("demo user already exists, nothing to do", slog.String("email", demoEmail))
			return
		}
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("demo data seeded",
		slog.String("email", demoEmail),
		slog.String("password", demoPassword),
	)
}

func seed(ctx context.Context, logger *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) error {
	users := userpg.New(pool)
	notes := notepg.New(pool)
	tags := tagpg.New(pool)
	reminders := reminderpg.New(pool)
	todos := todopg.New(pool)
	tx := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	noteService := notesvc.NewService(logger, notes, tags, tx)
	tagService := tagsvc.NewService(logger, tags)
	todoService := todosvc.NewService(logger, todos)
	reminderService := remindersvc.NewService(logger, reminders)

	result, err := authService.Register(ctx, authsvc.RegisterInput{
		Email:       demoEmail,
		Password:    demoPassword,
		DisplayName: "Demo User",
		Timezone:    "Europe/Berlin",
	})
	if err != nil {
		return fmt.Errorf("register demo user: %w", err)
	}

	// Services resolve the owner from the context.
	ctx = ctxutil.WithUserID(ctx, result.User.ID)

	for _, t := range []tagsvc.CreateTagInput{
		{Name: "work", Color: "#4a90d9"},
		{Name: "personal", Color: "#7bc862"},
		{Name: "ideas"},
	} {
		if _, err := tagService.CreateTag(ctx, t); err != nil {
			return fmt.Errorf("create tag %q: %w", t.Name, err)
		}
	}

	welcome, err := noteService.CreateNote(ctx, notesvc.CreateNoteInput{
		Title: "Welcome to Daybook",
		Content: "# Welcome\n\nDaybook keeps your **notes**, *reminders*, and todos in one place.\n\n" +
			"Try telling the agent things like:\n\n" +
			"- remind me to water the plants tomorrow at 9\n" +
			"- add a note about the standup\n" +
			"- what should I do first today?\n",
		Tags: []string{"personal"},
	})
	if err != nil {
		return fmt.Errorf("create welcome note: %w", err)
	}
	if _, err := noteService.UpdateNote(ctx, notesvc.UpdateNoteInput{
		NoteID: welcome.ID,
		Pinned: ptr(true),
	}); err != nil {
		return fmt.Errorf("pin welcome note: %w", err)
	}

	if _, err := noteService.CreateNote(ctx, notesvc.CreateNoteInput{
		Title:   "Meeting notes",
		Content: "## Planning sync\n\n- ship the reminder dispatcher\n- review the tag colors\n",
		Tags:    []string{"work"},
	}); err != nil {
		return fmt.Errorf("create meeting note: %w", err)
	}

	tomorrow := time.Now().Add(24 * time.Hour)

	for _, td := range []todosvc.CreateTodoInput{
		{Title: "File expense report", Priority: string(domain.PriorityDoFirst), DueDate: ptr(tomorrow)},
		{Title: "Plan quarterly goals", Priority: string(domain.PrioritySchedule)},
		{Title: "Reply to the survey invite", Description: ptr("Can be handed to anyone on the team."), Priority: string(domain.PriorityDelegate)},
	} {
		if _, err := todoService.CreateTodo(ctx, td); err != nil {
			return fmt.Errorf("create todo %q: %w", td.Title, err)
		}
	}

	if _, err := reminderService.CreateReminder(ctx, remindersvc.CreateReminderInput{
		Message:    "Weekly review",
		RemindAt:   ptr(tomorrow),
		NotifyVia:  string(domain.NotifyViaEmail),
		Recurrence: string(domain.RecurrenceWeekly),
	}); err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}

	return nil
}
