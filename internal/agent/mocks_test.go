package agent

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/internal/llm"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

var (
	_ noteStore         = &mockNoteStore{}
	_ reminderStore     = &mockReminderStore{}
	_ todoStore         = &mockTodoStore{}
	_ tagStore          = &mockTagStore{}
	_ integrationStore  = &mockIntegrationStore{}
	_ txManager         = &mockTxManager{}
	_ modelClient       = &mockModelClient{}
	_ calendarConnector = &mockCalendarConnector{}
)

type mockNoteStore struct {
	ListRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Note, error)
	FindByTextFunc func(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Note, error)
	CreateFunc     func(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error)
	UpdateFunc     func(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	HardDeleteFunc func(ctx context.Context, userID, noteID uuid.UUID) error
}

func (m *mockNoteStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Note, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, userID, limit)
	}
	return []*domain.Note{}, nil
}

func (m *mockNoteStore) FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Note, error) {
	if m.FindByTextFunc != nil {
		return m.FindByTextFunc(ctx, userID, text, limit)
	}
	return []*domain.Note{}, nil
}

func (m *mockNoteStore) Create(ctx context.Context, userID uuid.UUID, note *domain.Note) (*domain.Note, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, note)
	}
	created := *note
	created.ID = uuid.New()
	created.UserID = userID
	return &created, nil
}

func (m *mockNoteStore) Update(ctx context.Context, userID, noteID uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, noteID, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockNoteStore) HardDelete(ctx context.Context, userID, noteID uuid.UUID) error {
	if m.HardDeleteFunc != nil {
		return m.HardDeleteFunc(ctx, userID, noteID)
	}
	return nil
}

type mockReminderStore struct {
	ListRecentFunc        func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reminder, error)
	FindPendingByTextFunc func(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Reminder, error)
	CreateFunc            func(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error)
	UpdateStatusFunc      func(ctx context.Context, userID, reminderID uuid.UUID, from, to domain.ReminderStatus) error
}

func (m *mockReminderStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reminder, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, userID, limit)
	}
	return []*domain.Reminder{}, nil
}

func (m *mockReminderStore) FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Reminder, error) {
	if m.FindPendingByTextFunc != nil {
		return m.FindPendingByTextFunc(ctx, userID, text, limit)
	}
	return []*domain.Reminder{}, nil
}

func (m *mockReminderStore) Create(ctx context.Context, userID uuid.UUID, rem *domain.Reminder) (*domain.Reminder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, rem)
	}
	created := *rem
	created.ID = uuid.New()
	created.UserID = userID
	return &created, nil
}

func (m *mockReminderStore) UpdateStatus(ctx context.Context, userID, reminderID uuid.UUID, from, to domain.ReminderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, userID, reminderID, from, to)
	}
	return nil
}

type mockTodoStore struct {
	ListPendingFunc       func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Todo, error)
	FindByTextFunc        func(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error)
	FindPendingByTextFunc func(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error)
	CreateFunc            func(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error)
	UpdateFunc            func(ctx context.Context, userID, todoID uuid.UUID, params domain.TodoUpdateParams) (*domain.Todo, error)
	CompleteFunc          func(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error)
	DeleteFunc            func(ctx context.Context, userID, todoID uuid.UUID) error
}

func (m *mockTodoStore) ListPending(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Todo, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, userID, limit)
	}
	return []*domain.Todo{}, nil
}

func (m *mockTodoStore) FindByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error) {
	if m.FindByTextFunc != nil {
		return m.FindByTextFunc(ctx, userID, text, limit)
	}
	return []*domain.Todo{}, nil
}

func (m *mockTodoStore) FindPendingByText(ctx context.Context, userID uuid.UUID, text string, limit int) ([]*domain.Todo, error) {
	if m.FindPendingByTextFunc != nil {
		return m.FindPendingByTextFunc(ctx, userID, text, limit)
	}
	return []*domain.Todo{}, nil
}

func (m *mockTodoStore) Create(ctx context.Context, userID uuid.UUID, todo *domain.Todo) (*domain.Todo, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, todo)
	}
	created := *todo
	created.ID = uuid.New()
	created.UserID = userID
	return &created, nil
}

func (m *mockTodoStore) Update(ctx context.Context, userID, todoID uuid.UUID, params domain.TodoUpdateParams) (*domain.Todo, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, todoID, params)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTodoStore) Complete(ctx context.Context, userID, todoID uuid.UUID) (*domain.Todo, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, userID, todoID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTodoStore) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, todoID)
	}
	return nil
}

type mockTagStore struct {
	ListFunc                   func(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	FindByNamesInsensitiveFunc func(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error)
	ReplaceNoteTagsFunc        func(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error
}

func (m *mockTagStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []*domain.Tag{}, nil
}

func (m *mockTagStore) FindByNamesInsensitive(ctx context.Context, userID uuid.UUID, names []string) ([]*domain.Tag, error) {
	if m.FindByNamesInsensitiveFunc != nil {
		return m.FindByNamesInsensitiveFunc(ctx, userID, names)
	}
	return []*domain.Tag{}, nil
}

func (m *mockTagStore) ReplaceNoteTags(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.ReplaceNoteTagsFunc != nil {
		return m.ReplaceNoteTagsFunc(ctx, noteID, tagIDs)
	}
	return nil
}

type mockIntegrationStore struct {
	ListActiveFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error)
}

func (m *mockIntegrationStore) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Integration, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, userID)
	}
	return []*domain.Integration{}, nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockModelClient struct {
	CompleteFunc func(ctx context.Context, req llm.Request, exec llm.ToolExecutor) (llm.Reply, error)
}

func (m *mockModelClient) Complete(ctx context.Context, req llm.Request, exec llm.ToolExecutor) (llm.Reply, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req, exec)
	}
	return llm.Reply{Text: "ok"}, nil
}

type mockCalendarConnector struct {
	ListToolsFunc func(ctx context.Context, accountID string) ([]domain.ToolSpec, error)
	CallToolFunc  func(ctx context.Context, accountID, name string, args map[string]any) (string, error)
}

func (m *mockCalendarConnector) ListTools(ctx context.Context, accountID string) ([]domain.ToolSpec, error) {
	if m.ListToolsFunc != nil {
		return m.ListToolsFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *mockCalendarConnector) CallTool(ctx context.Context, accountID, name string, args map[string]any) (string, error) {
	if m.CallToolFunc != nil {
		return m.CallToolFunc(ctx, accountID, name, args)
	}
	return "", nil
}

// ===========================================================================
// Test construction helpers
// ===========================================================================

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// agentMocks collects the collaborators for one test agent. Nil fields are
// replaced with zero-value mocks whose defaults are benign.
type agentMocks struct {
	notes        *mockNoteStore
	reminders    *mockReminderStore
	todos        *mockTodoStore
	tags         *mockTagStore
	integrations *mockIntegrationStore
	tx           *mockTxManager
	model        *mockModelClient
	calendar     *mockCalendarConnector
}

func newTestAgent(m agentMocks) *Agent {
	if m.notes == nil {
		m.notes = &mockNoteStore{}
	}
	if m.reminders == nil {
		m.reminders = &mockReminderStore{}
	}
	if m.todos == nil {
		m.todos = &mockTodoStore{}
	}
	if m.tags == nil {
		m.tags = &mockTagStore{}
	}
	if m.integrations == nil {
		m.integrations = &mockIntegrationStore{}
	}
	if m.tx == nil {
		m.tx = &mockTxManager{}
	}
	if m.model == nil {
		m.model = &mockModelClient{}
	}

	var calendar calendarConnector
	if m.calendar != nil {
		calendar = m.calendar
	}

	return New(
		newTestLogger(),
		m.notes,
		m.reminders,
		m.todos,
		m.tags,
		m.integrations,
		m.tx,
		m.model,
		calendar,
		nil,
	)
}

// scriptedCall is one tool invocation a scripted model will issue.
type scriptedCall struct {
	name string
	args map[string]any
}

// scriptModel returns a model client that deterministically executes the
// given tool calls in order through the registry and then answers with
// finalText, the way the real adapter drives its loop.
func scriptModel(finalText string, calls ...scriptedCall) *mockModelClient {
	return &mockModelClient{
		CompleteFunc: func(ctx context.Context, req llm.Request, exec llm.ToolExecutor) (llm.Reply, error) {
			reply := llm.Reply{Text: finalText}
			for _, c := range calls {
				reply.ToolResults = append(reply.ToolResults, exec.Execute(ctx, c.name, c.args))
			}
			return reply, nil
		},
	}
}
