package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/repo"
)

// newServiceDB opens a throwaway SQLite database with the full schema.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// gormNoteRepo adapts the repo functions to the NoteRepo interface; tests use
// it the same way the HTTP wiring does.
type gormNoteRepo struct{}

func (gormNoteRepo) CreateNote(ctx context.Context, db *gorm.DB, n *domain.Note) error {
	return repo.CreateNote(ctx, db, n)
}

func (gormNoteRepo) GetNote(ctx context.Context, db *gorm.DB, spaceSlug string, number int64) (*domain.Note, error) {
	return repo.GetNote(ctx, db, spaceSlug, number)
}

func (gormNoteRepo) CountNotes(ctx context.Context, db *gorm.DB, spaceSlug string) (int64, error) {
	return repo.CountNotes(ctx, db, spaceSlug)
}

func (gormNoteRepo) ListNotesPage(ctx context.Context, db *gorm.DB, spaceSlug string, offset, limit int) ([]domain.Note, error) {
	return repo.ListNotesPage(ctx, db, spaceSlug, offset, limit)
}

func (gormNoteRepo) SearchNotes(ctx context.Context, db *gorm.DB, spaceSlug string, filter map[string]any, order string, offset, limit int) ([]domain.Note, int64, error) {
	return repo.SearchNotes(ctx, db, spaceSlug, filter, order, offset, limit)
}

// gormCommentRepo adapts the repo functions to the CommentRepo interface.
type gormCommentRepo struct{}

func (gormCommentRepo) CreateComment(ctx context.Context, db *gorm.DB, c *domain.Comment) error {
	return repo.CreateComment(ctx, db, c)
}

func (gormCommentRepo) CountComments(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64) (int64, error) {
	return repo.CountComments(ctx, db, spaceSlug, noteNumber)
}

func (gormCommentRepo) ListCommentsPage(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64, offset, limit int) ([]domain.Comment, error) {
	return repo.ListCommentsPage(ctx, db, spaceSlug, noteNumber, offset, limit)
}
