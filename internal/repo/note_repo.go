// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Note
// model. Notes are an unbounded collection and are never cached: reads go
// straight to storage with pagination.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
)

// CreateNote inserts a fully-formed note row. The (space_slug, number)
// uniqueness is enforced by the database; the number itself comes from the
// sequence allocator and is never reused.
func CreateNote(ctx context.Context, db *gorm.DB, n *domain.Note) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(n).Error
}

// GetNote fetches a note by its space slug and number, or ErrNotFound.
func GetNote(ctx context.Context, db *gorm.DB, spaceSlug string, number int64) (*domain.Note, error) {
	var n domain.Note
	err := db.WithContext(ctx).
		Where("space_slug = ? AND number = ?", spaceSlug, number).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CountNotes returns the total number of notes in a space.
func CountNotes(ctx context.Context, db *gorm.DB, spaceSlug string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("space_slug = ?", spaceSlug).
		Count(&total).Error
	return total, err
}

// ListNotesPage returns a page of notes in a space ordered by number
// descending (newest first). Use CountNotes for the pagination total.
func ListNotesPage(ctx context.Context, db *gorm.DB, spaceSlug string, offset, limit int) ([]domain.Note, error) {
	var out []domain.Note
	err := db.WithContext(ctx).
		Where("space_slug = ?", spaceSlug).
		Order("number desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SearchNotes returns a page of notes in a space matching a caller-supplied
// structured filter, ordered by the caller-supplied order expression. The
// filter map and order string are handed to the store's query builder
// without interpretation: a malformed column or expression surfaces as the
// database's own error. An empty order falls back to number descending.
func SearchNotes(ctx context.Context, db *gorm.DB, spaceSlug string, filter map[string]any, order string, offset, limit int) ([]domain.Note, int64, error) {
	if order == "" {
		order = "number desc"
	}

	base := db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("space_slug = ?", spaceSlug)
	if len(filter) > 0 {
		base = base.Where(filter)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Note
	err := base.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}

// SpaceStats returns aggregate metadata for a space's notes: the total
// number of rows and the creation time of the newest note. When the space
// has no notes, the returned count is 0 and lastNoteAt is nil.
func SpaceStats(ctx context.Context, db *gorm.DB, spaceSlug string) (count int64, lastNoteAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Note{}).Where("space_slug = ?", spaceSlug)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("number DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
