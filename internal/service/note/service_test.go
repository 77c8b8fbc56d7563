package note

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	tagpg "github.com/daybookhq/daybook-backend/internal/adapter/postgres/tag"
	"github.com/daybookhq/daybook-backend/internal/domain"
	"github.com/daybookhq/daybook-backend/pkg/ctxutil"
)

func TestCreateNote_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	workTag := &domain.Tag{ID: uuid.New(), UserID: userID, Name: "Work", Color: "#ff0000"}

	var linkedNoteID uuid.UUID
	var linkedTagIDs []uuid.UUID
	tags := &mockTagRepo{
		FindByNamesInsensitiveFunc: func(ctx context.Context, uid uuid.UUID, names []string) ([]*domain.Tag, error) {
			if len(names) != 2 {
				t.Errorf("names: got %v, want 2 entries", names)
			}
			return []*domain.Tag{workTag}, nil
		},
		ReplaceNoteTagsFunc: func(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
			linkedNoteID = noteID
			linkedTagIDs = tagIDs
			return nil
		},
	}

	svc := newTestService(nil, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.CreateNote(ctx, CreateNoteInput{
		Title:   "  Meeting notes  ",
		Content: "discuss roadmap",
		Tags:    []string{"work", "nonexistent"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "Meeting notes" {
		t.Errorf("title not trimmed: got %q", result.Title)
	}
	if linkedNoteID != result.ID {
		t.Errorf("linked note: got %v, want %v", linkedNoteID, result.ID)
	}
	if len(linkedTagIDs) != 1 || linkedTagIDs[0] != workTag.ID {
		t.Errorf("linked tag ids: got %v, want [%v]", linkedTagIDs, workTag.ID)
	}
	if len(result.Tags) != 1 || result.Tags[0].Name != "Work" {
		t.Errorf("tags: got %v", result.Tags)
	}
}

func TestCreateNote_NoTagsSkipsLinking(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	var lookupCalled, replaceCalled bool
	tags := &mockTagRepo{
		FindByNamesInsensitiveFunc: func(ctx context.Context, uid uuid.UUID, names []string) ([]*domain.Tag, error) {
			lookupCalled = true
			return []*domain.Tag{}, nil
		},
		ReplaceNoteTagsFunc: func(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(nil, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.CreateNote(ctx, CreateNoteInput{Title: "Untagged"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookupCalled || replaceCalled {
		t.Error("tag repo should not be touched without tag names")
	}
	if result.Tags == nil || len(result.Tags) != 0 {
		t.Errorf("tags: got %v, want empty non-nil slice", result.Tags)
	}
}

func TestCreateNote_EmptyTitle(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.CreateNote(ctx, CreateNoteInput{Title: "   "})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "title" || ve.Errors[0].Message != "required" {
		t.Errorf("got %s/%s, want title/required", ve.Errors[0].Field, ve.Errors[0].Message)
	}
}

func TestCreateNote_TitleTooLong(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.CreateNote(ctx, CreateNoteInput{Title: strings.Repeat("a", MaxTitleLen+1)})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want validation error", err)
	}
}

func TestCreateNote_CreateFailureAbortsTx(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repoErr := errors.New("disk full")

	var replaceCalled bool
	notes := &mockNoteRepo{
		CreateFunc: func(ctx context.Context, uid uuid.UUID, note *domain.Note) (*domain.Note, error) {
			return nil, repoErr
		},
	}
	tags := &mockTagRepo{
		FindByNamesInsensitiveFunc: func(ctx context.Context, uid uuid.UUID, names []string) ([]*domain.Tag, error) {
			return []*domain.Tag{{ID: uuid.New(), Name: "work"}}, nil
		},
		ReplaceNoteTagsFunc: func(ctx context.Context, noteID uuid.UUID, tagIDs []uuid.UUID) error {
			replaceCalled = true
			return nil
		},
	}

	svc := newTestService(notes, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.CreateNote(ctx, CreateNoteInput{Title: "x", Tags: []string{"work"}})
	if !errors.Is(err, repoErr) {
		t.Errorf("error should wrap repo error: got %v", err)
	}
	if replaceCalled {
		t.Error("tags must not be linked when the insert fails")
	}
}

func TestCreateNote_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)

	_, err := svc.CreateNote(context.Background(), CreateNoteInput{Title: "x"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error: got %v, want ErrUnauthorized", err)
	}
}

func TestListNotes_HydratesTagsInBatch(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteA := &domain.Note{ID: uuid.New(), UserID: userID, Title: "A"}
	noteB := &domain.Note{ID: uuid.New(), UserID: userID, Title: "B"}
	workTag := domain.Tag{ID: uuid.New(), UserID: userID, Name: "work"}

	var batchIDs []uuid.UUID
	notes := &mockNoteRepo{
		ListFunc: func(ctx context.Context, uid uuid.UUID) ([]*domain.Note, error) {
			return []*domain.Note{noteA, noteB}, nil
		},
	}
	tags := &mockTagRepo{
		ListByNoteIDsFunc: func(ctx context.Context, noteIDs []uuid.UUID) ([]tagpg.TagWithNoteID, error) {
			batchIDs = noteIDs
			return []tagpg.TagWithNoteID{{NoteID: noteA.ID, Tag: workTag}}, nil
		},
	}

	svc := newTestService(notes, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.ListNotes(ctx, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batchIDs) != 2 {
		t.Errorf("batch ids: got %v, want both note ids", batchIDs)
	}
	if len(result[0].Tags) != 1 || result[0].Tags[0].Name != "work" {
		t.Errorf("note A tags: got %v", result[0].Tags)
	}
	if result[1].Tags == nil || len(result[1].Tags) != 0 {
		t.Errorf("note B tags: got %v, want empty non-nil slice", result[1].Tags)
	}
}

func TestListNotes_TrashedUsesTrashQuery(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	var activeCalled, trashedCalled bool
	notes := &mockNoteRepo{
		ListFunc: func(ctx context.Context, uid uuid.UUID) ([]*domain.Note, error) {
			activeCalled = true
			return []*domain.Note{}, nil
		},
		ListTrashedFunc: func(ctx context.Context, uid uuid.UUID) ([]*domain.Note, error) {
			trashedCalled = true
			return []*domain.Note{}, nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if _, err := svc.ListNotes(ctx, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activeCalled || !trashedCalled {
		t.Errorf("trashed=true should use the trash query (active=%v trashed=%v)", activeCalled, trashedCalled)
	}
}

func TestGetNote_AttachesTags(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	notes := &mockNoteRepo{
		GetByIDFunc: func(ctx context.Context, uid, nid uuid.UUID) (*domain.Note, error) {
			return &domain.Note{ID: nid, UserID: uid, Title: "Plan"}, nil
		},
	}
	tags := &mockTagRepo{
		ListByNoteIDFunc: func(ctx context.Context, nid uuid.UUID) ([]*domain.Tag, error) {
			return []*domain.Tag{{ID: uuid.New(), Name: "home"}}, nil
		},
	}

	svc := newTestService(notes, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.GetNote(ctx, noteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tags) != 1 || result.Tags[0].Name != "home" {
		t.Errorf("tags: got %v", result.Tags)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.GetNote(ctx, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_PartialFields(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var captured domain.NoteUpdateParams
	notes := &mockNoteRepo{
		UpdateFunc: func(ctx context.Context, uid, nid uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
			captured = params
			return &domain.Note{ID: nid, UserID: uid, Title: *params.Title}, nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	newTitle := " Renamed "
	result, err := svc.UpdateNote(ctx, UpdateNoteInput{NoteID: noteID, Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Title == nil || *captured.Title != "Renamed" {
		t.Errorf("title param: got %v, want trimmed Renamed", captured.Title)
	}
	if captured.Content != nil || captured.Pinned != nil {
		t.Error("untouched fields must stay nil")
	}
	if result.Tags == nil {
		t.Error("tags should be hydrated on the result")
	}
}

func TestUpdateNote_ReplacesTagsWhenGiven(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()
	homeTag := &domain.Tag{ID: uuid.New(), UserID: userID, Name: "home"}

	var replacedIDs []uuid.UUID
	notes := &mockNoteRepo{
		UpdateFunc: func(ctx context.Context, uid, nid uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
			return &domain.Note{ID: nid, UserID: uid, Title: "Plan"}, nil
		},
	}
	tags := &mockTagRepo{
		FindByNamesInsensitiveFunc: func(ctx context.Context, uid uuid.UUID, names []string) ([]*domain.Tag, error) {
			return []*domain.Tag{homeTag}, nil
		},
		ReplaceNoteTagsFunc: func(ctx context.Context, nid uuid.UUID, tagIDs []uuid.UUID) error {
			replacedIDs = tagIDs
			return nil
		},
	}

	svc := newTestService(notes, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	newTags := []string{"Home"}
	result, err := svc.UpdateNote(ctx, UpdateNoteInput{NoteID: noteID, Tags: &newTags})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(replacedIDs) != 1 || replacedIDs[0] != homeTag.ID {
		t.Errorf("replaced ids: got %v", replacedIDs)
	}
	if len(result.Tags) != 1 || result.Tags[0].Name != "home" {
		t.Errorf("tags: got %v", result.Tags)
	}
}

func TestUpdateNote_EmptyTagsClearsLinks(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var replaceCalled bool
	var replacedIDs []uuid.UUID
	notes := &mockNoteRepo{
		UpdateFunc: func(ctx context.Context, uid, nid uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
			return &domain.Note{ID: nid, UserID: uid}, nil
		},
	}
	tags := &mockTagRepo{
		ReplaceNoteTagsFunc: func(ctx context.Context, nid uuid.UUID, tagIDs []uuid.UUID) error {
			replaceCalled = true
			replacedIDs = tagIDs
			return nil
		},
	}

	svc := newTestService(notes, tags)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	empty := []string{}
	result, err := svc.UpdateNote(ctx, UpdateNoteInput{NoteID: noteID, Tags: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !replaceCalled {
		t.Error("an explicit empty tag list should clear the links")
	}
	if len(replacedIDs) != 0 {
		t.Errorf("replaced ids: got %v, want none", replacedIDs)
	}
	if len(result.Tags) != 0 {
		t.Errorf("tags: got %v, want empty", result.Tags)
	}
}

func TestUpdateNote_NothingToUpdate(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil, nil)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.UpdateNote(ctx, UpdateNoteInput{NoteID: uuid.New()})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "update" {
		t.Errorf("field: got %q, want update", ve.Errors[0].Field)
	}
}

func TestPinNote_TogglesFlag(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var captured domain.NoteUpdateParams
	notes := &mockNoteRepo{
		UpdateFunc: func(ctx context.Context, uid, nid uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
			captured = params
			return &domain.Note{ID: nid, UserID: uid, Pinned: *params.Pinned}, nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.PinNote(ctx, noteID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Pinned == nil || !*captured.Pinned {
		t.Errorf("pinned param: got %v, want true", captured.Pinned)
	}
	if captured.Title != nil || captured.Content != nil {
		t.Error("pin must not touch title or content")
	}
	if !result.Pinned {
		t.Error("result should be pinned")
	}
}

func TestDeleteNote_SoftDeletes(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var softCalled, hardCalled bool
	notes := &mockNoteRepo{
		SoftDeleteFunc: func(ctx context.Context, uid, nid uuid.UUID) error {
			softCalled = true
			return nil
		},
		HardDeleteFunc: func(ctx context.Context, uid, nid uuid.UUID) error {
			hardCalled = true
			return nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if err := svc.DeleteNote(ctx, noteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !softCalled || hardCalled {
		t.Errorf("delete should trash, not purge (soft=%v hard=%v)", softCalled, hardCalled)
	}
}

func TestRestoreNote_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var restoredID uuid.UUID
	notes := &mockNoteRepo{
		RestoreFunc: func(ctx context.Context, uid, nid uuid.UUID) error {
			restoredID = nid
			return nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if err := svc.RestoreNote(ctx, noteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restoredID != noteID {
		t.Errorf("restored: got %v, want %v", restoredID, noteID)
	}
}

func TestPurgeNote_HardDeletes(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	noteID := uuid.New()

	var hardCalled bool
	notes := &mockNoteRepo{
		HardDeleteFunc: func(ctx context.Context, uid, nid uuid.UUID) error {
			hardCalled = true
			return nil
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if err := svc.PurgeNote(ctx, noteID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hardCalled {
		t.Error("purge should hard-delete")
	}
}

func TestDeleteNote_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	notes := &mockNoteRepo{
		SoftDeleteFunc: func(ctx context.Context, uid, nid uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	svc := newTestService(notes, nil)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	err := svc.DeleteNote(ctx, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "delete note") {
		t.Errorf("error should carry operation context: got %q", err.Error())
	}
}
