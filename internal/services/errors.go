// Package services defines the business logic for users, spaces, notes, and
// comments. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer. They fall into four classes: not-found,
// validation, authentication, and access-denied. Field-level validation
// failures carry their own type (schema.FieldError) so the offending field
// id survives to the response.
package services

import "errors"

// Not-found class.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSpaceNotFound indicates that the requested space does not exist.
	ErrSpaceNotFound = errors.New("space not found")

	// ErrNoteNotFound indicates that the requested note does not exist in
	// the given space.
	ErrNoteNotFound = errors.New("note not found")
)

// Validation class.
var (
	// ErrDuplicateUsername is returned when creating a user whose username
	// is already taken.
	ErrDuplicateUsername = errors.New("user already exists")

	// ErrInvalidUsername is returned when a username is blank.
	ErrInvalidUsername = errors.New("username is empty")

	// ErrDuplicateSlug is returned when creating a space whose slug is
	// already taken.
	ErrDuplicateSlug = errors.New("space already exists")

	// ErrInvalidSlug is returned when a space slug is not URL-safe
	// (lowercase letters, digits, and single hyphens).
	ErrInvalidSlug = errors.New("slug must be lowercase letters, digits, and hyphens")

	// ErrInvalidField is returned when a field definition has an unknown
	// type or a blank id.
	ErrInvalidField = errors.New("invalid field definition")

	// ErrDuplicateField is returned when a field id already exists in the
	// space schema.
	ErrDuplicateField = errors.New("field already exists in space")

	// ErrAlreadyMember is returned when adding a user who is already a
	// member of the space.
	ErrAlreadyMember = errors.New("user is already a member")

	// ErrEmptyContent is returned when a comment has no content after
	// trimming whitespace.
	ErrEmptyContent = errors.New("content is empty")

	// ErrSelfDelete is returned when the admin attempts to delete their own
	// account.
	ErrSelfDelete = errors.New("cannot delete yourself")
)

// Authentication / access-denied class.
var (
	// ErrInvalidToken is returned when no user matches the presented
	// authentication token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAdminRequired is returned when a non-admin user invokes an
	// admin-only operation.
	ErrAdminRequired = errors.New("admin privileges required")

	// ErrNotMember is returned when a user acts on a space they are not a
	// member of.
	ErrNotMember = errors.New("space membership required")
)
