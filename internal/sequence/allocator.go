// Package sequence issues strictly increasing integers per scope, backed by
// an atomic upsert-increment against durable storage. There is no in-process
// counter state: every allocation is a single SQL statement, so concurrent
// callers for the same scope serialize at the database and can never observe
// the same value twice.
package sequence

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Scope identifies the counter a number is drawn from. NoteNumber 0 selects
// the space's note counter; a positive NoteNumber selects the comment
// counter of that note within the space.
type Scope struct {
	SpaceSlug  string
	NoteNumber int64
}

// NoteScope returns the scope numbering notes within a space.
func NoteScope(spaceSlug string) Scope {
	return Scope{SpaceSlug: spaceSlug}
}

// CommentScope returns the scope numbering comments on a note.
func CommentScope(spaceSlug string, noteNumber int64) Scope {
	return Scope{SpaceSlug: spaceSlug, NoteNumber: noteNumber}
}

// Allocator hands out per-scope sequence numbers. The zero value is not
// usable; construct with NewAllocator.
type Allocator struct {
	db *gorm.DB
}

// NewAllocator returns an Allocator writing through db.
func NewAllocator(db *gorm.DB) *Allocator {
	return &Allocator{db: db}
}

// Next atomically increments the counter for the scope and returns the new
// value. A previously-unseen scope is initialized on first use and yields 1.
//
// The upsert and the read of the post-increment value are one statement;
// callers must never reimplement this as read-add-write, which races. A
// value consumed here is never rolled back: if the caller's subsequent
// insert fails, the number is a permanent, accepted gap. Storage errors
// propagate unchanged with no internal retry.
func (a *Allocator) Next(ctx context.Context, scope Scope) (int64, error) {
	var seq int64
	err := a.db.WithContext(ctx).Raw(
		`INSERT INTO counters (space_slug, note_number, seq) VALUES (?, ?, 1)
		 ON CONFLICT (space_slug, note_number) DO UPDATE SET seq = seq + 1
		 RETURNING seq`,
		scope.SpaceSlug, scope.NoteNumber,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	if seq < 1 {
		// The upsert always returns a row; anything else is a driver fault.
		return 0, errors.New("sequence: upsert returned no value")
	}
	return seq, nil
}
