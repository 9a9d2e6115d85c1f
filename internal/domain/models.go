// Package domain defines the persistence models for users, spaces, notes,
// and comments. These types are mapped with GORM and form the core data
// layer of the note-taking backend. Users and spaces are addressed by
// natural keys (username, slug) rather than their technical primary keys.
package domain

import (
	"time"
)

// User is an account that can authenticate and author notes and comments.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: natural key, unique across the system.
//   - Token: authentication token, unique; looked up on every request.
//   - CreatedAt: timestamp managed by GORM.
//
// Users are immutable after creation except for full deletion.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Token     string    `json:"-"          gorm:"type:varchar(128);not null;uniqueIndex:ux_users_token"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Space is a container for notes with a custom, per-space field schema.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Slug: natural key, unique, URL-safe; immutable after creation.
//   - Title: display name.
//   - Members: usernames with access, insertion order preserved for display.
//   - Fields: ordered field definitions for notes in this space.
//
// Members and Fields are document-shaped and stored as JSON columns.
type Space struct {
	ID        string      `json:"id"         gorm:"type:char(36);primaryKey"`
	Slug      string      `json:"slug"       gorm:"type:varchar(64);not null;uniqueIndex:ux_spaces_slug"`
	Title     string      `json:"title"      gorm:"type:varchar(255);not null"`
	Members   []string    `json:"members"    gorm:"serializer:json;type:text"`
	Fields    SpaceFields `json:"fields"     gorm:"serializer:json;type:text"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Space.
func (Space) TableName() string { return "spaces" }

// HasMember reports whether username is in the space's member list.
func (s *Space) HasMember(username string) bool {
	for _, m := range s.Members {
		if m == username {
			return true
		}
	}
	return false
}

// Note is a record created against a space's schema. Notes are numbered
// sequentially per space starting at 1; (space_slug, number) is unique and
// used in URLs instead of the technical id.
type Note struct {
	ID             string      `json:"id"              gorm:"type:char(36);primaryKey"`
	SpaceSlug      string      `json:"space_slug"      gorm:"type:varchar(64);not null;uniqueIndex:ux_notes_space_number,priority:1"`
	Number         int64       `json:"number"          gorm:"not null;uniqueIndex:ux_notes_space_number,priority:2"`
	AuthorUsername string      `json:"author_username" gorm:"type:varchar(64);not null"`
	Fields         FieldValues `json:"fields"          gorm:"serializer:json;type:text"`
	CreatedAt      time.Time   `json:"created_at"`
}

// TableName returns the database table name for Note.
func (Note) TableName() string { return "notes" }

// Comment is a reply attached to a note. Comments are numbered sequentially
// per note starting at 1; (space_slug, note_number, number) is unique.
type Comment struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	SpaceSlug      string    `json:"space_slug"      gorm:"type:varchar(64);not null;uniqueIndex:ux_comments_scope,priority:1"`
	NoteNumber     int64     `json:"note_number"     gorm:"not null;uniqueIndex:ux_comments_scope,priority:2"`
	Number         int64     `json:"number"          gorm:"not null;uniqueIndex:ux_comments_scope,priority:3"`
	AuthorUsername string    `json:"author_username" gorm:"type:varchar(64);not null"`
	Content        string    `json:"content"         gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Counter is the durable record behind the per-scope sequence allocator.
// One row per scope: (space_slug, 0) numbers notes in a space, and
// (space_slug, note_number) numbers comments on a note. Seq holds the last
// issued value; rows are created on first allocation and never deleted or
// rolled back.
type Counter struct {
	SpaceSlug  string `json:"space_slug"  gorm:"type:varchar(64);primaryKey"`
	NoteNumber int64  `json:"note_number" gorm:"primaryKey"`
	Seq        int64  `json:"seq"         gorm:"not null"`
}

// TableName returns the database table name for Counter.
func (Counter) TableName() string { return "counters" }
