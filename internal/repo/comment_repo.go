// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
)

// CreateComment inserts a fully-formed comment row. The
// (space_slug, note_number, number) uniqueness is enforced by the database.
func CreateComment(ctx context.Context, db *gorm.DB, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(c).Error
}

// CountComments returns the total number of comments on a note.
func CountComments(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("space_slug = ? AND note_number = ?", spaceSlug, noteNumber).
		Count(&total).Error
	return total, err
}

// ListCommentsPage returns a page of comments on a note ordered by number
// ascending (oldest first). Use CountComments for the pagination total.
func ListCommentsPage(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64, offset, limit int) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("space_slug = ? AND note_number = ?", spaceSlug, noteNumber).
		Order("number asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
