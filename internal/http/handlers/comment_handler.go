// Comment HTTP handlers.
//
// Endpoints:
//   - POST /spaces/:slug/notes/:number/comments (create, members only)
//   - GET  /spaces/:slug/notes/:number/comments (paginated list, oldest first)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/utils"
)

// CreateCommentRequest is the JSON payload for commenting on a note.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required" example:"Looks good to me."`
}

// CreateComment godoc
// @ID          createComment
// @Summary     Comment on a note (members only)
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       slug   path string true "Space slug"
// @Param       number path int    true "Note number"
// @Param       body   body handlers.CreateCommentRequest true "Comment payload"
// @Success     201 {object} domain.Comment
// @Failure     400 {object} handlers.ErrorResponse "Empty content"
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space or note not found"
// @Router      /spaces/{slug}/notes/{number}/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	u, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}
	number, valid := noteNumber(c)
	if !valid {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "content is required")
		return
	}

	cm, err := h.comments.Create(c.Request.Context(), sp.Slug, number, u.Username, req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cm)
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments on a note (members only)
// @Description Paginated, ordered by number ascending (oldest first). Total is the full count for the note.
// @Tags        Comments
// @Produce     json
// @Param       slug   path  string true  "Space slug"
// @Param       number path  int    true  "Note number"
// @Param       limit  query int    false "Page size (default 100)"
// @Param       offset query int    false "Items to skip"
// @Success     200 {object} utils.Page[domain.Comment]
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space or note not found"
// @Router      /spaces/{slug}/notes/{number}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}
	number, valid := noteNumber(c)
	if !valid {
		return
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	offset := utils.AtoiDefault(c.Query("offset"), 0)

	page, err := h.comments.List(c.Request.Context(), sp.Slug, number, limit, offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}
