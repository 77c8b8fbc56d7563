package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/daybookhq/daybook-backend/internal/adapter/anthropic"
	"github.com/daybookhq/daybook-backend/internal/adapter/mcpcal"
	"github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	integrationpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/integration"
	notepg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/note"
	reminderpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/reminder"
	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	todopg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/todo"
	userpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/user"
	"github.com/daybookhq/daybook-backend/internal/adapter/webhook"
	"github.com/daybookhq/daybook-backend/internal/agent"
	"github.com/daybookhq/daybook-backend/internal/auth"
	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/markdown"
	"github.com/daybookhq/daybook-backend/internal/metrics"
	"github.com/daybookhq/daybook-backend/internal/scheduler"
	authsvc "github.com/daybookhq/daybook-backend/internal/service/auth"
	integrationsvc "github.com/daybookhq/daybook-backend/internal/service/integration"
	notesvc "github.com/daybookhq/daybook-backend/internal/service/note"
	remindersvc "github.com/daybookhq/daybook-backend/internal/service/reminder"
	tagsvc "github.com/daybookhq/daybook-backend/internal/service/tag"
	todosvc "github.com/daybookhq/daybook-backend/internal/service/todo"
	usersvc "github.com/daybookhq/daybook-backend/internal/service/user"
	"github.com/daybookhq/daybook-backend/internal/transport/middleware"
	"github.com/daybookhq/daybook-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, the command agent, and the
// HTTP transport, then serves until ctx is cancelled. The reminder
// dispatcher runs alongside the server when enabled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	m := metrics.MustNew(prometheus.DefaultRegisterer)

	// Repositories.
	users := userpg.New(pool)
	notes := notepg.New(pool)
	tags := tagpg.New(pool)
	reminders := reminderpg.New(pool)
	todos := todopg.New(pool)
	integrations := integrationpg.New(pool)
	tx := postgres.NewTxManager(pool)

	// Services.
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users)
	noteService := notesvc.NewService(logger, notes, tags, tx)
	tagService := tagsvc.NewService(logger, tags)
	reminderService := remindersvc.NewService(logger, reminders)
	todoService := todosvc.NewService(logger, todos)
	integrationService := integrationsvc.NewService(logger, integrations)

	// Command agent.
	model := anthropic.NewClient(anthropic.Config{
		APIKey:         cfg.Agent.APIKey,
		Model:          cfg.Agent.Model,
		MaxTokens:      cfg.Agent.MaxTokens,
		MaxRounds:      cfg.Agent.MaxToolRounds,
		RequestTimeout: cfg.Agent.RequestTimeout,
	}, logger)

	var commandAgent *agent.Agent
	if cfg.Calendar.Enabled() {
		connector, err := mcpcal.New(mcpcal.Config{
			BridgeURL:      cfg.Calendar.BridgeURL,
			RequestTimeout: cfg.Calendar.RequestTimeout,
			ToolCacheTTL:   cfg.Calendar.ToolCacheTTL,
			ToolCacheSize:  cfg.Calendar.ToolCacheSize,
		}, logger)
		if err != nil {
			return fmt.Errorf("create calendar connector: %w", err)
		}
		commandAgent = agent.New(logger, notes, reminders, todos, tags, integrations, tx, model, connector, m)
	} else {
		commandAgent = agent.New(logger, notes, reminders, todos, tags, integrations, tx, model, nil, m)
	}

	// HTTP transport.
	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	mux := rest.NewRouter(rest.Handlers{
		Auth:        rest.NewAuthHandler(authService, logger),
		User:        rest.NewUserHandler(userService, logger),
		Note:        rest.NewNoteHandler(noteService, markdown.New(), logger),
		Reminder:    rest.NewReminderHandler(reminderService, logger),
		Todo:        rest.NewTodoHandler(todoService, logger),
		Tag:         rest.NewTagHandler(tagService, logger),
		Integration: rest.NewIntegrationHandler(integrationService, logger),
		Agent:       rest.NewAgentHandler(commandAgent, logger),
		Inbound:     rest.NewInboundHandler(commandAgent, users, cfg.Inbound, logger),
		Health:      rest.NewHealthHandler(pool, Version),
	}, rl.Limit(cfg.Agent.RateLimitPerMinute))

	// Metrics sits innermost so the route label can be read off the
	// request after the mux has matched it.
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Metrics(m),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if cfg.Scheduler.Enabled {
		email := webhook.NewSender("email", cfg.Notifier.EmailWebhookURL, cfg.Notifier.RequestTimeout, logger)
		push := webhook.NewSender("push", cfg.Notifier.PushWebhookURL, cfg.Notifier.RequestTimeout, logger)
		dispatcher := scheduler.New(logger, reminders, users, email, push, cfg.Scheduler, m)

		g.Go(func() error {
			if err := dispatcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("reminder dispatcher: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
