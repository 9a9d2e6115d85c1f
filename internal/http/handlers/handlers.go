// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate payload shapes,
// resolve the authenticated user, enforce membership/admin guards, delegate
// to the service layer, and translate service errors into HTTP envelopes.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/http/middleware"
	"github.com/spacenote/spacenote/internal/services"
)

// Handlers bundles the service dependencies of all endpoint groups.
type Handlers struct {
	users    *services.UserService
	spaces   *services.SpaceService
	notes    *services.NoteService
	comments *services.CommentService
}

// New constructs the handler set over the given services.
func New(users *services.UserService, spaces *services.SpaceService, notes *services.NoteService, comments *services.CommentService) *Handlers {
	return &Handlers{users: users, spaces: spaces, notes: notes, comments: comments}
}

// currentUser returns the authenticated user placed in the context by the
// Auth middleware. Routes registered behind Auth always have one; the bool
// guards direct handler invocation in tests.
func currentUser(c *gin.Context) (domain.User, bool) {
	return middleware.CurrentUser(c)
}

// isAdmin reports whether u is the administrator account.
func isAdmin(u domain.User) bool { return u.Username == services.AdminUsername }

// requireAdmin resolves the current user and enforces the admin guard,
// writing the 403 envelope on failure.
func (h *Handlers) requireAdmin(c *gin.Context) (domain.User, bool) {
	u, ok := currentUser(c)
	if !ok {
		failErr(c, services.ErrInvalidToken)
		return domain.User{}, false
	}
	if !isAdmin(u) {
		failErr(c, services.ErrAdminRequired)
		return domain.User{}, false
	}
	return u, true
}

// requireMember resolves the current user and enforces membership of the
// space (admin bypasses). On failure the proper envelope is written: 404
// when the space is missing, 403 when the user is not a member.
func (h *Handlers) requireMember(c *gin.Context, slug string) (domain.User, domain.Space, bool) {
	u, ok := currentUser(c)
	if !ok {
		failErr(c, services.ErrInvalidToken)
		return domain.User{}, domain.Space{}, false
	}
	sp, err := h.spaces.Get(slug)
	if err != nil {
		failErr(c, err)
		return domain.User{}, domain.Space{}, false
	}
	if !isAdmin(u) && !sp.HasMember(u.Username) {
		failErr(c, services.ErrNotMember)
		return domain.User{}, domain.Space{}, false
	}
	return u, sp, true
}
