// Space HTTP handlers.
//
// Endpoints:
//   - GET  /spaces               (spaces visible to the current user)
//   - POST /spaces               (create space, admin only)
//   - GET  /spaces/:slug         (space details, members only)
//   - GET  /spaces/:slug/stats   (note statistics, members only)
//   - POST /spaces/:slug/members (add member, admin only)
//   - POST /spaces/:slug/fields  (append schema field, admin only)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/repo"
)

// SpaceResponse is the public space representation.
type SpaceResponse struct {
	Slug    string             `json:"slug" example:"proj"`
	Title   string             `json:"title" example:"Project Notes"`
	Members []string           `json:"members"`
	Fields  domain.SpaceFields `json:"fields"`
}

func spaceResponse(sp domain.Space) SpaceResponse {
	return SpaceResponse{Slug: sp.Slug, Title: sp.Title, Members: sp.Members, Fields: sp.Fields}
}

// CreateSpaceRequest is the JSON payload for creating a space. Fields is the
// initial note schema; it may be empty and extended later.
type CreateSpaceRequest struct {
	Slug   string             `json:"slug" binding:"required" example:"proj"`
	Title  string             `json:"title" example:"Project Notes"`
	Fields domain.SpaceFields `json:"fields,omitempty"`
}

// AddMemberRequest is the JSON payload for adding a member to a space.
type AddMemberRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
}

// SpaceStatsResponse summarizes a space's notes.
type SpaceStatsResponse struct {
	NoteCount  int64      `json:"note_count" example:"42"`
	LastNoteAt *time.Time `json:"last_note_at,omitempty"`
}

// ListSpaces godoc
// @ID          listSpaces
// @Summary     List spaces visible to the current user
// @Description Admin sees all spaces; regular users see spaces they are members of.
// @Tags        Spaces
// @Produce     json
// @Success     200 {array}  handlers.SpaceResponse
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Router      /spaces [get]
func (h *Handlers) ListSpaces(c *gin.Context) {
	u, authed := currentUser(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid token")
		return
	}
	spaces := h.spaces.VisibleTo(u.Username)
	out := make([]SpaceResponse, 0, len(spaces))
	for _, sp := range spaces {
		out = append(out, spaceResponse(sp))
	}
	ok(c, http.StatusOK, out)
}

// CreateSpace godoc
// @ID          createSpace
// @Summary     Create a space (admin only)
// @Tags        Spaces
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateSpaceRequest true "Space payload"
// @Success     201 {object} handlers.SpaceResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid slug, duplicate slug, or bad field definition"
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router      /spaces [post]
func (h *Handlers) CreateSpace(c *gin.Context) {
	if _, authorized := h.requireAdmin(c); !authorized {
		return
	}

	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "slug is required")
		return
	}

	sp, err := h.spaces.Create(c.Request.Context(), req.Slug, req.Title, req.Fields)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, spaceResponse(sp))
}

// GetSpace godoc
// @ID          getSpace
// @Summary     Get a space (members only)
// @Tags        Spaces
// @Produce     json
// @Param       slug path string true "Space slug"
// @Success     200 {object} handlers.SpaceResponse
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug} [get]
func (h *Handlers) GetSpace(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}
	ok(c, http.StatusOK, spaceResponse(sp))
}

// SpaceStats godoc
// @ID          getSpaceStats
// @Summary     Get note statistics for a space (members only)
// @Tags        Spaces
// @Produce     json
// @Param       slug path string true "Space slug"
// @Success     200 {object} handlers.SpaceStatsResponse
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug}/stats [get]
func (h *Handlers) SpaceStats(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}

	count, lastAt, err := repo.SpaceStats(c.Request.Context(), h.notes.DB, sp.Slug)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, SpaceStatsResponse{NoteCount: count, LastNoteAt: lastAt})
}

// AddMember godoc
// @ID          addSpaceMember
// @Summary     Add a member to a space (admin only)
// @Tags        Spaces
// @Accept      json
// @Produce     json
// @Param       slug path string true "Space slug"
// @Param       body body handlers.AddMemberRequest true "Member payload"
// @Success     200 {object} handlers.SpaceResponse
// @Failure     400 {object} handlers.ErrorResponse "Already a member"
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Failure     404 {object} handlers.ErrorResponse "Space or user not found"
// @Router      /spaces/{slug}/members [post]
func (h *Handlers) AddMember(c *gin.Context) {
	if _, authorized := h.requireAdmin(c); !authorized {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "username is required")
		return
	}

	sp, err := h.spaces.AddMember(c.Request.Context(), c.Param("slug"), req.Username)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, spaceResponse(sp))
}

// AddField godoc
// @ID          addSpaceField
// @Summary     Append a field to a space schema (admin only)
// @Description Existing notes keep their stored values; the new field governs future notes.
// @Tags        Spaces
// @Accept      json
// @Produce     json
// @Param       slug path string true "Space slug"
// @Param       body body domain.SpaceField true "Field definition"
// @Success     200 {object} handlers.SpaceResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid or duplicate field"
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug}/fields [post]
func (h *Handlers) AddField(c *gin.Context) {
	if _, authorized := h.requireAdmin(c); !authorized {
		return
	}

	var field domain.SpaceField
	if err := c.ShouldBindJSON(&field); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid field definition")
		return
	}

	sp, err := h.spaces.AddField(c.Request.Context(), c.Param("slug"), field)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, spaceResponse(sp))
}
