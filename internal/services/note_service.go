// Package services: NoteService.
//
// This file implements the NoteService, which orchestrates note creation and
// retrieval. A creation request moves through four steps: resolve the owning
// space (cache lookup), validate the raw input against the space's current
// field schema, allocate the next note number for the space, and insert the
// fully-formed record. The allocation step has a durable side effect that is
// not undone if the insert fails; the skipped number stays as a permanent,
// accepted gap.
//
// Notes are an unbounded collection and are never cached: reads and
// listings go straight to durable storage with pagination.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/schema"
	"github.com/spacenote/spacenote/internal/sequence"
	"github.com/spacenote/spacenote/internal/utils"
)

// NoteRepo defines the repository contract required by NoteService.
// Implementations are responsible for persistence of note records.
type NoteRepo interface {
	// CreateNote inserts a fully-formed note row.
	CreateNote(ctx context.Context, db *gorm.DB, n *domain.Note) error

	// GetNote fetches a note by space slug and number.
	GetNote(ctx context.Context, db *gorm.DB, spaceSlug string, number int64) (*domain.Note, error)

	// CountNotes returns the total number of notes in a space.
	CountNotes(ctx context.Context, db *gorm.DB, spaceSlug string) (int64, error)

	// ListNotesPage returns a page of notes ordered by number descending.
	ListNotesPage(ctx context.Context, db *gorm.DB, spaceSlug string, offset, limit int) ([]domain.Note, error)

	// SearchNotes passes a structured filter and order through to the store.
	SearchNotes(ctx context.Context, db *gorm.DB, spaceSlug string, filter map[string]any, order string, offset, limit int) ([]domain.Note, int64, error)
}

// Sequencer is the slice of the sequence allocator the service needs.
type Sequencer interface {
	Next(ctx context.Context, scope sequence.Scope) (int64, error)
}

// NoteService provides note-level operations: creation against the space
// schema, single-note retrieval, paginated listing, and filtered search.
type NoteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the note repository used by this service.
	Repo NoteRepo
	// Spaces resolves the owning space and its field schema.
	Spaces *SpaceService
	// Seq allocates per-space note numbers.
	Seq Sequencer

	// DefaultLimit and MaxLimit bound the page size for listings.
	DefaultLimit int
	MaxLimit     int
}

// NewNoteService constructs a NoteService with sane pagination defaults.
func NewNoteService(db *gorm.DB, r NoteRepo, spaces *SpaceService, seq Sequencer) *NoteService {
	return &NoteService{
		DB:           db,
		Repo:         r,
		Spaces:       spaces,
		Seq:          seq,
		DefaultLimit: 50,
		MaxLimit:     500,
	}
}

// Create validates raw field input against the owning space's schema,
// allocates the next note number, and inserts the record.
//
// Ordering: validation happens before allocation so rejected input never
// burns a number. A failed insert after allocation leaves a gap, which is
// accepted behavior, not an error distinct from the insert failure itself.
func (s *NoteService) Create(ctx context.Context, spaceSlug, authorUsername string, raw map[string]string) (*domain.Note, error) {
	sp, err := s.Spaces.Get(spaceSlug)
	if err != nil {
		return nil, err
	}

	fields, err := schema.Validate(sp.Fields, raw)
	if err != nil {
		return nil, err
	}

	number, err := s.Seq.Next(ctx, sequence.NoteScope(spaceSlug))
	if err != nil {
		return nil, err
	}

	n := &domain.Note{
		SpaceSlug:      spaceSlug,
		Number:         number,
		AuthorUsername: authorUsername,
		Fields:         fields,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.CreateNote(ctx, s.DB, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get fetches a note by space slug and number, mapping a missing row to
// ErrNoteNotFound.
func (s *NoteService) Get(ctx context.Context, spaceSlug string, number int64) (*domain.Note, error) {
	n, err := s.Repo.GetNote(ctx, s.DB, spaceSlug, number)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// List returns a page of the space's notes ordered by number descending
// (newest first). Total is the full count for the space regardless of the
// page bounds. The space must exist.
func (s *NoteService) List(ctx context.Context, spaceSlug string, limit, offset int) (utils.Page[domain.Note], error) {
	var page utils.Page[domain.Note]
	if !s.Spaces.Has(spaceSlug) {
		return page, ErrSpaceNotFound
	}

	limit = utils.ClampLimit(limit, s.DefaultLimit, s.MaxLimit)
	if offset < 0 {
		offset = 0
	}

	total, err := s.Repo.CountNotes(ctx, s.DB, spaceSlug)
	if err != nil {
		return page, err
	}

	items := []domain.Note{}
	if total > 0 {
		items, err = s.Repo.ListNotesPage(ctx, s.DB, spaceSlug, offset, limit)
		if err != nil {
			return page, err
		}
	}

	return utils.Page[domain.Note]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// Search returns a page of the space's notes matching a caller-supplied
// structured filter and order expression. Both are handed to the durable
// store's query capability without interpretation here; shapes the store
// rejects surface as its errors.
func (s *NoteService) Search(ctx context.Context, spaceSlug string, filter map[string]any, order string, limit, offset int) (utils.Page[domain.Note], error) {
	var page utils.Page[domain.Note]
	if !s.Spaces.Has(spaceSlug) {
		return page, ErrSpaceNotFound
	}

	limit = utils.ClampLimit(limit, s.DefaultLimit, s.MaxLimit)
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.Repo.SearchNotes(ctx, s.DB, spaceSlug, filter, order, offset, limit)
	if err != nil {
		return page, err
	}
	if items == nil {
		items = []domain.Note{}
	}
	return utils.Page[domain.Note]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
