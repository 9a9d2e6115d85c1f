// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Space
// model. Spaces carry their member list and field schema as JSON columns,
// so updates persist the full aggregate in one row write.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
)

// ListSpaces returns every space row; feeds the space cache reload.
func ListSpaces(ctx context.Context, db *gorm.DB) ([]domain.Space, error) {
	var out []domain.Space
	err := db.WithContext(ctx).Find(&out).Error
	return out, err
}

// CreateSpace inserts a new space row. Slug uniqueness is enforced by the
// database.
func CreateSpace(ctx context.Context, db *gorm.DB, s *domain.Space) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return db.WithContext(ctx).Create(s).Error
}

// UpdateSpace replaces the mutable columns of the space addressed by slug
// (title, members, fields). The slug itself is immutable after creation.
// Returns ErrNotFound when no row matches.
func UpdateSpace(ctx context.Context, db *gorm.DB, s *domain.Space) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	res := db.WithContext(ctx).
		Model(&domain.Space{}).
		Where("slug = ?", s.Slug).
		Select("title", "members", "fields", "updated_at").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSpace removes the space row addressed by slug. Notes and comments
// reference the slug by value and are intentionally left in place.
func DeleteSpace(ctx context.Context, db *gorm.DB, slug string) error {
	res := db.WithContext(ctx).
		Where("slug = ?", slug).
		Delete(&domain.Space{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
