// Package services – CommentService
//
// This file implements the CommentService, which manages replies attached to
// notes. Comment numbers are sequential per note and come from the same
// gap-tolerant allocator as note numbers, scoped by (space, note).
package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/sequence"
	"github.com/spacenote/spacenote/internal/utils"
)

// CommentRepo defines the repository contract required by CommentService.
type CommentRepo interface {
	// CreateComment inserts a fully-formed comment row.
	CreateComment(ctx context.Context, db *gorm.DB, c *domain.Comment) error

	// CountComments returns the total number of comments on a note.
	CountComments(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64) (int64, error)

	// ListCommentsPage returns a page of comments ordered by number ascending.
	ListCommentsPage(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64, offset, limit int) ([]domain.Comment, error)
}

// CommentService provides comment creation and paginated listing.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the comment repository used by this service.
	Repo CommentRepo
	// Notes confirms the referenced note exists at creation time.
	Notes *NoteService
	// Seq allocates per-note comment numbers.
	Seq Sequencer

	// DefaultLimit and MaxLimit bound the page size for listings.
	DefaultLimit int
	MaxLimit     int
}

// NewCommentService constructs a CommentService with sane pagination
// defaults.
func NewCommentService(db *gorm.DB, r CommentRepo, notes *NoteService, seq Sequencer) *CommentService {
	return &CommentService{
		DB:           db,
		Repo:         r,
		Notes:        notes,
		Seq:          seq,
		DefaultLimit: 100,
		MaxLimit:     500,
	}
}

// Create attaches a comment to an existing note. The note lookup happens
// before the number allocation; a comment on a missing note never consumes
// a number. A failed insert after allocation leaves an accepted gap.
func (s *CommentService) Create(ctx context.Context, spaceSlug string, noteNumber int64, authorUsername, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.Notes.Get(ctx, spaceSlug, noteNumber); err != nil {
		return nil, err
	}

	number, err := s.Seq.Next(ctx, sequence.CommentScope(spaceSlug, noteNumber))
	if err != nil {
		return nil, err
	}

	c := &domain.Comment{
		SpaceSlug:      spaceSlug,
		NoteNumber:     noteNumber,
		Number:         number,
		AuthorUsername: authorUsername,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.CreateComment(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a page of a note's comments ordered by number ascending
// (oldest first). Total is the full count for the note regardless of the
// page bounds. The note must exist.
func (s *CommentService) List(ctx context.Context, spaceSlug string, noteNumber int64, limit, offset int) (utils.Page[domain.Comment], error) {
	var page utils.Page[domain.Comment]
	if _, err := s.Notes.Get(ctx, spaceSlug, noteNumber); err != nil {
		return page, err
	}

	limit = utils.ClampLimit(limit, s.DefaultLimit, s.MaxLimit)
	if offset < 0 {
		offset = 0
	}

	total, err := s.Repo.CountComments(ctx, s.DB, spaceSlug, noteNumber)
	if err != nil {
		return page, err
	}

	items := []domain.Comment{}
	if total > 0 {
		items, err = s.Repo.ListCommentsPage(ctx, s.DB, spaceSlug, noteNumber, offset, limit)
		if err != nil {
			return page, err
		}
	}

	return utils.Page[domain.Comment]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
