// Package services – UserService
//
// This file implements the UserService, which owns the in-memory user cache
// keyed by username with a secondary index on the authentication token. The
// durable store is authoritative; the cache is rebuilt from it on startup
// and kept in lockstep by write-through on every mutation. Token lookups
// happen on every authenticated request and never touch storage.
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/cache"
	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/repo"
)

// AdminUsername is the bootstrap administrator account. Admin-only
// operations compare against this name.
const AdminUsername = "admin"

// userStore adapts the user repository to the cache.Store contract.
type userStore struct {
	db *gorm.DB
}

func (s userStore) LoadAll(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.db)
}

func (s userStore) Insert(ctx context.Context, u domain.User) error {
	return repo.CreateUser(ctx, s.db, &u)
}

// Update is never reached: users are immutable except for full deletion.
func (s userStore) Update(ctx context.Context, u domain.User) error {
	return gorm.ErrInvalidData
}

func (s userStore) Delete(ctx context.Context, u domain.User) error {
	return repo.DeleteUser(ctx, s.db, u.Username)
}

// UserService manages user accounts and authentication lookups.
type UserService struct {
	// AdminToken is the token assigned to the bootstrap admin account when
	// it does not exist yet.
	AdminToken string

	cache *cache.Cache[string, string, domain.User]
}

// NewUserService constructs a UserService over db. The cache starts empty;
// call Start before serving requests.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		AdminToken: AdminUsername,
		cache: cache.New[string, string, domain.User](
			userStore{db: db},
			func(u domain.User) string { return u.Username },
			func(u domain.User) (string, bool) { return u.Token, u.Token != "" },
		),
	}
}

// Start loads the full user collection into the cache and makes sure the
// bootstrap admin account exists. No request may be served before Start
// returns.
func (s *UserService) Start(ctx context.Context) error {
	if err := s.cache.ReloadAll(ctx); err != nil {
		return err
	}
	if !s.cache.Contains(AdminUsername) {
		if _, err := s.Create(ctx, AdminUsername, s.AdminToken); err != nil {
			return err
		}
	}
	return nil
}

// Reload rebuilds the cache from durable storage.
func (s *UserService) Reload(ctx context.Context) error {
	return s.cache.ReloadAll(ctx)
}

// Get returns the user by username, or ErrUserNotFound. Pure cache lookup.
func (s *UserService) Get(username string) (domain.User, error) {
	u, ok := s.cache.Get(username)
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}

// GetByToken returns the user owning the authentication token, or
// ErrInvalidToken. Pure cache lookup; used on every request.
func (s *UserService) GetByToken(token string) (domain.User, error) {
	u, ok := s.cache.GetBySecondary(token)
	if !ok {
		return domain.User{}, ErrInvalidToken
	}
	return u, nil
}

// Has reports whether the username exists.
func (s *UserService) Has(username string) bool {
	return s.cache.Contains(username)
}

// All returns every user sorted by username.
func (s *UserService) All() []domain.User {
	users := s.cache.All()
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// Create adds a new user. An empty token gets a generated one. Duplicate
// usernames fail with ErrDuplicateUsername before any storage write; the
// database's unique indexes remain the last line of defense.
func (s *UserService) Create(ctx context.Context, username, token string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrInvalidUsername
	}
	if s.cache.Contains(username) {
		return domain.User{}, ErrDuplicateUsername
	}
	if token == "" {
		token = uuid.NewString()
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cache.Insert(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Delete removes a user from storage and both cache indexes. Returns
// ErrUserNotFound when the username does not exist.
func (s *UserService) Delete(ctx context.Context, username string) error {
	err := s.cache.Remove(ctx, username)
	if err == cache.ErrNotFound {
		return ErrUserNotFound
	}
	return err
}
