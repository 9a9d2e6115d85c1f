// Package services – SpaceService
//
// This file implements the SpaceService, which owns the in-memory space
// cache keyed by slug. Spaces are small administrative aggregates: the
// member list and field schema live inside the space row as JSON, and every
// mutation persists the full aggregate durably before the cache is touched.
//
// Membership and schema edits use the cache's read-modify-write Update,
// which carries a documented lost-update risk under concurrent edits of the
// same space. These writes are rare and administrator-driven, so no
// optimistic-concurrency token is employed.
package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/cache"
	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/repo"
)

// slugRE accepts lowercase URL-safe slugs like "my-project".
var slugRE = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// spaceStore adapts the space repository to the cache.Store contract.
type spaceStore struct {
	db *gorm.DB
}

func (s spaceStore) LoadAll(ctx context.Context) ([]domain.Space, error) {
	return repo.ListSpaces(ctx, s.db)
}

func (s spaceStore) Insert(ctx context.Context, sp domain.Space) error {
	return repo.CreateSpace(ctx, s.db, &sp)
}

func (s spaceStore) Update(ctx context.Context, sp domain.Space) error {
	return repo.UpdateSpace(ctx, s.db, &sp)
}

func (s spaceStore) Delete(ctx context.Context, sp domain.Space) error {
	return repo.DeleteSpace(ctx, s.db, sp.Slug)
}

// SpaceService manages spaces, their membership, and their field schemas.
type SpaceService struct {
	// Users validates usernames before they enter a member list.
	Users *UserService

	cache *cache.Cache[string, string, domain.Space]
	title cases.Caser
}

// NewSpaceService constructs a SpaceService over db. The cache starts
// empty; call Start before serving requests.
func NewSpaceService(db *gorm.DB, users *UserService) *SpaceService {
	return &SpaceService{
		Users: users,
		cache: cache.New[string, string, domain.Space](
			spaceStore{db: db},
			func(sp domain.Space) string { return sp.Slug },
			nil,
		),
		title: cases.Title(language.English),
	}
}

// Start loads the full space collection into the cache.
func (s *SpaceService) Start(ctx context.Context) error {
	return s.cache.ReloadAll(ctx)
}

// Reload rebuilds the cache from durable storage.
func (s *SpaceService) Reload(ctx context.Context) error {
	return s.cache.ReloadAll(ctx)
}

// Get returns the space by slug, or ErrSpaceNotFound. Pure cache lookup.
func (s *SpaceService) Get(slug string) (domain.Space, error) {
	sp, ok := s.cache.Get(slug)
	if !ok {
		return domain.Space{}, ErrSpaceNotFound
	}
	return sp, nil
}

// Has reports whether the slug exists.
func (s *SpaceService) Has(slug string) bool {
	return s.cache.Contains(slug)
}

// All returns every space sorted by slug.
func (s *SpaceService) All() []domain.Space {
	spaces := s.cache.All()
	sort.Slice(spaces, func(i, j int) bool { return spaces[i].Slug < spaces[j].Slug })
	return spaces
}

// VisibleTo returns the spaces the user may see: admin sees all, everyone
// else sees the spaces they are a member of.
func (s *SpaceService) VisibleTo(username string) []domain.Space {
	all := s.All()
	if username == AdminUsername {
		return all
	}
	visible := make([]domain.Space, 0, len(all))
	for _, sp := range all {
		if sp.HasMember(username) {
			visible = append(visible, sp)
		}
	}
	return visible
}

// Create adds a new space with the given slug, display title, and initial
// field schema. The slug must be URL-safe and unused; field ids must be
// unique with known types. A blank title is derived from the slug.
func (s *SpaceService) Create(ctx context.Context, slug, title string, fields domain.SpaceFields) (domain.Space, error) {
	if !slugRE.MatchString(slug) {
		return domain.Space{}, ErrInvalidSlug
	}
	if s.cache.Contains(slug) {
		return domain.Space{}, ErrDuplicateSlug
	}
	if err := validateFields(fields); err != nil {
		return domain.Space{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = s.title.String(strings.ReplaceAll(slug, "-", " "))
	}

	now := time.Now().UTC()
	sp := domain.Space{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     title,
		Members:   []string{},
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cache.Insert(ctx, sp); err != nil {
		return domain.Space{}, err
	}
	return sp, nil
}

// AddMember appends a username to the space's member list. The user must
// exist at insertion time; membership is checked, not enforced by a foreign
// key. Duplicate members fail with ErrAlreadyMember.
func (s *SpaceService) AddMember(ctx context.Context, slug, username string) (domain.Space, error) {
	sp, err := s.Get(slug)
	if err != nil {
		return domain.Space{}, err
	}
	if _, err := s.Users.Get(username); err != nil {
		return domain.Space{}, err
	}
	if sp.HasMember(username) {
		return domain.Space{}, ErrAlreadyMember
	}

	updated, err := s.cache.Update(ctx, slug, func(sp domain.Space) domain.Space {
		members := make([]string, 0, len(sp.Members)+1)
		members = append(members, sp.Members...)
		sp.Members = append(members, username)
		sp.UpdatedAt = time.Now().UTC()
		return sp
	})
	if err == cache.ErrNotFound {
		return domain.Space{}, ErrSpaceNotFound
	}
	return updated, err
}

// AddField appends a field definition to the space schema. The id must not
// collide with an existing field. Already-stored notes are not rewritten;
// the schema governs validation of future notes only.
func (s *SpaceService) AddField(ctx context.Context, slug string, f domain.SpaceField) (domain.Space, error) {
	sp, err := s.Get(slug)
	if err != nil {
		return domain.Space{}, err
	}
	if err := validateFields(domain.SpaceFields{f}); err != nil {
		return domain.Space{}, err
	}
	if _, exists := sp.Fields.Find(f.ID); exists {
		return domain.Space{}, ErrDuplicateField
	}

	updated, err := s.cache.Update(ctx, slug, func(sp domain.Space) domain.Space {
		fields := make(domain.SpaceFields, 0, len(sp.Fields)+1)
		fields = append(fields, sp.Fields...)
		sp.Fields = append(fields, f)
		sp.UpdatedAt = time.Now().UTC()
		return sp
	})
	if err == cache.ErrNotFound {
		return domain.Space{}, ErrSpaceNotFound
	}
	return updated, err
}

// validateFields rejects blank ids, unknown types, and duplicate ids.
func validateFields(fields domain.SpaceFields) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.ID) == "" || !f.Type.Valid() {
			return ErrInvalidField
		}
		if _, dup := seen[f.ID]; dup {
			return ErrDuplicateField
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
