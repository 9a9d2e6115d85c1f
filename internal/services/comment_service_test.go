package services

import (
	"context"
	"errors"
	"testing"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/sequence"
)

// newCommentFixture wires the full stack and creates a space with two notes.
func newCommentFixture(t *testing.T) (*NoteService, *CommentService) {
	t.Helper()
	db := newServiceDB(t)
	users := NewUserService(db)
	spaces := NewSpaceService(db, users)
	seq := sequence.NewAllocator(db)
	notes := NewNoteService(db, gormNoteRepo{}, spaces, seq)
	comments := NewCommentService(db, gormCommentRepo{}, notes, seq)

	ctx := context.Background()
	if err := users.Start(ctx); err != nil {
		t.Fatalf("users.Start: %v", err)
	}
	if err := spaces.Start(ctx); err != nil {
		t.Fatalf("spaces.Start: %v", err)
	}
	if _, err := spaces.Create(ctx, "proj", "P", domain.SpaceFields{
		{ID: "title", Type: domain.FieldTypeString, Required: true},
	}); err != nil {
		t.Fatalf("spaces.Create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t"}); err != nil {
			t.Fatalf("notes.Create: %v", err)
		}
	}
	return notes, comments
}

func TestCommentService_Create_NumbersPerNote(t *testing.T) {
	_, comments := newCommentFixture(t)
	ctx := context.Background()

	// Each note has its own counter starting at 1, independent of the
	// space's note counter.
	for want := int64(1); want <= 3; want++ {
		c, err := comments.Create(ctx, "proj", 1, "admin", "on note one")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if c.Number != want {
			t.Fatalf("note 1 comment number = %d, want %d", c.Number, want)
		}
	}
	c, err := comments.Create(ctx, "proj", 2, "admin", "on note two")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Number != 1 {
		t.Fatalf("note 2 first comment number = %d, want 1", c.Number)
	}
	if c.SpaceSlug != "proj" || c.NoteNumber != 2 || c.ID == "" || c.CreatedAt.IsZero() {
		t.Fatalf("comment fields incomplete: %+v", c)
	}
}

func TestCommentService_Create_Validation(t *testing.T) {
	_, comments := newCommentFixture(t)
	ctx := context.Background()

	if _, err := comments.Create(ctx, "proj", 1, "admin", "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank content = %v, want ErrEmptyContent", err)
	}
	if _, err := comments.Create(ctx, "proj", 99, "admin", "hi"); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("missing note = %v, want ErrNoteNotFound", err)
	}

	// Neither rejection consumed a number.
	c, err := comments.Create(ctx, "proj", 1, "admin", "hi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Number != 1 {
		t.Fatalf("first comment numbered %d, want 1 (rejection burned a number)", c.Number)
	}
}

func TestCommentService_List_OldestFirst(t *testing.T) {
	_, comments := newCommentFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := comments.Create(ctx, "proj", 1, "admin", "c"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// limit=2 offset=1 over [1,2,3,4,5] -> [2,3], total still 5.
	page, err := comments.List(ctx, "proj", 1, 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || page.Limit != 2 || page.Offset != 1 {
		t.Fatalf("page meta = %+v", page)
	}
	if len(page.Items) != 2 || page.Items[0].Number != 2 || page.Items[1].Number != 3 {
		t.Fatalf("page items = %+v", page.Items)
	}
}

func TestCommentService_List_EmptyAndMissing(t *testing.T) {
	_, comments := newCommentFixture(t)
	ctx := context.Background()

	page, err := comments.List(ctx, "proj", 2, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.Total != 0 {
		t.Fatalf("empty note must yield an empty non-nil page: %+v", page)
	}
	if page.Limit != comments.DefaultLimit {
		t.Fatalf("limit default = %d, want %d", page.Limit, comments.DefaultLimit)
	}

	if _, err := comments.List(ctx, "proj", 99, 0, 0); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("List missing note = %v, want ErrNoteNotFound", err)
	}
}
