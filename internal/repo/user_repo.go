// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence. Duplicate natural keys surface as the driver's unique
// constraint error; classification happens in the service layer.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
)

// ListUsers returns every user row. The collection is small and fully
// enumerable; this feeds the user cache reload.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).Find(&out).Error
	return out, err
}

// CreateUser inserts a new user row. The technical ID is a generated UUID;
// uniqueness of username and token is enforced by the database.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(u).Error
}

// DeleteUser removes the user row addressed by username. If no rows are
// affected, it returns ErrNotFound.
func DeleteUser(ctx context.Context, db *gorm.DB, username string) error {
	res := db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
