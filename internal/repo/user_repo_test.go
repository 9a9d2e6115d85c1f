package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacenote/spacenote/internal/domain"
)

func TestCreateUser_GeneratesIDAndTimestamp(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{Username: "alice", Token: "t-a"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}

	got, err := ListUsers(context.Background(), db)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListUsers = (%v, %v), want 1 row", got, err)
	}
	if got[0].Username != "alice" || got[0].Token != "t-a" {
		t.Fatalf("persisted row mismatch: %+v", got[0])
	}
}

func TestCreateUser_KeepsProvidedIDAndTimestamp(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &domain.User{ID: "fixed-id", Username: "bob", Token: "t-b", CreatedAt: at}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != "fixed-id" || !u.CreatedAt.Equal(at) {
		t.Fatalf("provided identity overwritten: %+v", u)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newRepoDB(t, &domain.User{})
	ctx := context.Background()

	if err := CreateUser(ctx, db, &domain.User{Username: "alice", Token: "t-1"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := CreateUser(ctx, db, &domain.User{Username: "alice", Token: "t-2"}); err == nil {
		t.Fatalf("expected unique constraint error for duplicate username")
	}
}

func TestCreateUser_DuplicateToken(t *testing.T) {
	db := newRepoDB(t, &domain.User{})
	ctx := context.Background()

	if err := CreateUser(ctx, db, &domain.User{Username: "alice", Token: "same"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := CreateUser(ctx, db, &domain.User{Username: "bob", Token: "same"}); err == nil {
		t.Fatalf("expected unique constraint error for duplicate token")
	}
}

func TestDeleteUser(t *testing.T) {
	db := newRepoDB(t, &domain.User{})
	ctx := context.Background()

	if err := CreateUser(ctx, db, &domain.User{Username: "alice", Token: "t-a"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := DeleteUser(ctx, db, "alice"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := DeleteUser(ctx, db, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}

	got, err := ListUsers(ctx, db)
	if err != nil || len(got) != 0 {
		t.Fatalf("ListUsers after delete = (%v, %v), want empty", got, err)
	}
}

func TestListUsers_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := ListUsers(context.Background(), db); err == nil {
		t.Fatalf("expected error without users table")
	}
}
