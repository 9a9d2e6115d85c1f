package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/schema"
	"github.com/spacenote/spacenote/internal/sequence"
)

// newNoteFixture wires a full note stack (users, spaces, allocator, notes)
// over one database and creates a space with a representative schema.
func newNoteFixture(t *testing.T) (*gorm.DB, *SpaceService, *NoteService) {
	t.Helper()
	db := newServiceDB(t)
	users := NewUserService(db)
	spaces := NewSpaceService(db, users)
	notes := NewNoteService(db, gormNoteRepo{}, spaces, sequence.NewAllocator(db))

	ctx := context.Background()
	if err := users.Start(ctx); err != nil {
		t.Fatalf("users.Start: %v", err)
	}
	if err := spaces.Start(ctx); err != nil {
		t.Fatalf("spaces.Start: %v", err)
	}

	fields := domain.SpaceFields{
		{ID: "title", Type: domain.FieldTypeString, Required: true},
		{ID: "priority", Type: domain.FieldTypeInt, Options: domain.FieldOptions{
			domain.OptionMin: 1,
			domain.OptionMax: 5,
		}},
		{ID: "status", Type: domain.FieldTypeSelect, Default: "open"},
		{ID: "tags", Type: domain.FieldTypeTags},
	}
	if _, err := spaces.Create(ctx, "proj", "Project", fields); err != nil {
		t.Fatalf("spaces.Create: %v", err)
	}
	return db, spaces, notes
}

func TestNoteService_Create_NumbersSequentially(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t"})
		if err != nil {
			t.Fatalf("Create #%d: %v", want, err)
		}
		if n.Number != want {
			t.Fatalf("note number = %d, want %d", n.Number, want)
		}
		if n.AuthorUsername != "admin" || n.ID == "" || n.CreatedAt.IsZero() {
			t.Fatalf("note fields incomplete: %+v", n)
		}
	}
}

func TestNoteService_Create_CoercesAndDefaults(t *testing.T) {
	_, _, notes := newNoteFixture(t)

	n, err := notes.Create(context.Background(), "proj", "admin", map[string]string{
		"title":    "hello",
		"priority": "3",
		"tags":     "a, b,  b",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Fields["title"] != "hello" {
		t.Fatalf("title = %v", n.Fields["title"])
	}
	if v, ok := n.Fields["priority"].(int64); !ok || v != 3 {
		t.Fatalf("priority = %v (%T), want int64 3", n.Fields["priority"], n.Fields["priority"])
	}
	if n.Fields["status"] != "open" {
		t.Fatalf("status default = %v, want %q", n.Fields["status"], "open")
	}
	tags, ok := n.Fields["tags"].([]string)
	if !ok || len(tags) != 3 || tags[0] != "a" || tags[1] != "b" || tags[2] != "b" {
		t.Fatalf("tags = %v", n.Fields["tags"])
	}
}

func TestNoteService_Create_ValidationBeforeAllocation(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	// Rejected input: required title missing, then a malformed int.
	if _, err := notes.Create(ctx, "proj", "admin", map[string]string{}); err == nil {
		t.Fatalf("expected validation error for missing title")
	}
	var fe *schema.FieldError
	_, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t", "priority": "high"})
	if !errors.As(err, &fe) || fe.FieldID != "priority" {
		t.Fatalf("bad priority = %v, want *FieldError naming priority", err)
	}

	// Rejected attempts must not have consumed numbers.
	n, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.Number != 1 {
		t.Fatalf("first accepted note numbered %d, want 1 (validation burned a number)", n.Number)
	}
}

func TestNoteService_Create_UnknownSpace(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	if _, err := notes.Create(context.Background(), "nope", "admin", map[string]string{"title": "t"}); !errors.Is(err, ErrSpaceNotFound) {
		t.Fatalf("Create in unknown space = %v, want ErrSpaceNotFound", err)
	}
}

func TestNoteService_Get(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	created, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := notes.Get(ctx, "proj", created.Number)
	if err != nil || got.ID != created.ID {
		t.Fatalf("Get = (%+v, %v)", got, err)
	}
	if _, err := notes.Get(ctx, "proj", 999); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("Get missing = %v, want ErrNoteNotFound", err)
	}
}

func TestNoteService_List_Pagination(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "t"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// limit=2 offset=2 over [5,4,3,2,1] -> [3,2], total still 5.
	page, err := notes.List(ctx, "proj", 2, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || page.Limit != 2 || page.Offset != 2 {
		t.Fatalf("page meta = %+v", page)
	}
	if len(page.Items) != 2 || page.Items[0].Number != 3 || page.Items[1].Number != 2 {
		t.Fatalf("page items = %+v", page.Items)
	}
}

func TestNoteService_List_ClampsAndDefaults(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	// Zero limit falls back to the default; negative offset becomes zero.
	page, err := notes.List(ctx, "proj", 0, -7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Limit != notes.DefaultLimit || page.Offset != 0 {
		t.Fatalf("clamp failed: %+v", page)
	}
	if page.Items == nil || len(page.Items) != 0 || page.Total != 0 {
		t.Fatalf("empty space must yield an empty non-nil page: %+v", page)
	}

	// Oversized limit clamps to the maximum.
	page, err = notes.List(ctx, "proj", notes.MaxLimit*10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Limit != notes.MaxLimit {
		t.Fatalf("limit = %d, want MaxLimit %d", page.Limit, notes.MaxLimit)
	}
}

func TestNoteService_List_UnknownSpace(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	if _, err := notes.List(context.Background(), "nope", 10, 0); !errors.Is(err, ErrSpaceNotFound) {
		t.Fatalf("List unknown space = %v, want ErrSpaceNotFound", err)
	}
}

func TestNoteService_Search(t *testing.T) {
	_, _, notes := newNoteFixture(t)
	ctx := context.Background()

	authors := []string{"admin", "alice", "admin", "alice"}
	for _, a := range authors {
		if _, err := notes.Create(ctx, "proj", a, map[string]string{"title": "t"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := notes.Search(ctx, "proj", map[string]any{"author_username": "alice"}, "number asc", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("search page = %+v", page)
	}
	if page.Items[0].Number != 2 || page.Items[1].Number != 4 {
		t.Fatalf("search order = %+v", page.Items)
	}

	if _, err := notes.Search(ctx, "nope", nil, "", 10, 0); !errors.Is(err, ErrSpaceNotFound) {
		t.Fatalf("Search unknown space = %v, want ErrSpaceNotFound", err)
	}
}

func TestNoteService_SchemaChangeGovernsFutureNotes(t *testing.T) {
	_, spaces, notes := newNoteFixture(t)
	ctx := context.Background()

	before, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "old"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Append a required field; the stored note is untouched, new notes must
	// supply it.
	if _, err := spaces.AddField(ctx, "proj", domain.SpaceField{ID: "severity", Type: domain.FieldTypeInt, Required: true}); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	if _, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "new"}); err == nil {
		t.Fatalf("expected validation error for missing severity")
	}
	n, err := notes.Create(ctx, "proj", "admin", map[string]string{"title": "new", "severity": "2"})
	if err != nil {
		t.Fatalf("Create with severity: %v", err)
	}
	if n.Number != before.Number+1 {
		t.Fatalf("numbering disturbed by schema change: %d after %d", n.Number, before.Number)
	}

	old, err := notes.Get(ctx, "proj", before.Number)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, has := old.Fields["severity"]; has {
		t.Fatalf("stored note rewritten by schema change: %+v", old.Fields)
	}
}
