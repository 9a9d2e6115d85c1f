// Note HTTP handlers.
//
// Endpoints:
//   - POST /spaces/:slug/notes              (create note, members only)
//   - GET  /spaces/:slug/notes              (paginated list, newest first)
//   - GET  /spaces/:slug/notes/:number      (single note)
//   - POST /spaces/:slug/notes/search       (filtered, ordered page)
//
// All note field values arrive as strings and are coerced according to the
// space's field schema; see the schema package for the rules.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/utils"
)

// CreateNoteRequest is the JSON payload for creating a note. All values are
// strings; conversion is driven by the space's field type definitions.
type CreateNoteRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// SearchNotesRequest carries a structured filter and order expression that
// are passed through to the storage layer's query capability.
type SearchNotesRequest struct {
	Filter map[string]any `json:"filter,omitempty"`
	Order  string         `json:"order,omitempty" example:"number desc"`
	Limit  int            `json:"limit,omitempty" example:"50"`
	Offset int            `json:"offset,omitempty" example:"0"`
}

// noteNumber parses the :number path parameter. Returns false (and writes
// the envelope) when it is not a positive integer.
func noteNumber(c *gin.Context) (int64, bool) {
	n, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || n < 1 {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "note number must be a positive integer")
		return 0, false
	}
	return n, true
}

// CreateNote godoc
// @ID          createNote
// @Summary     Create a note (members only)
// @Description Field values are strings converted per the space schema. Missing required fields fail with the field id in the message.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       slug path string true "Space slug"
// @Param       body body handlers.CreateNoteRequest true "Note payload"
// @Success     201 {object} domain.Note
// @Failure     400 {object} handlers.ErrorResponse "Schema validation failure"
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug}/notes [post]
func (h *Handlers) CreateNote(c *gin.Context) {
	u, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "fields object is required")
		return
	}

	n, err := h.notes.Create(c.Request.Context(), sp.Slug, u.Username, req.Fields)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, n)
}

// ListNotes godoc
// @ID          listNotes
// @Summary     List notes in a space (members only)
// @Description Paginated, ordered by number descending (newest first). Total is the full count for the space.
// @Tags        Notes
// @Produce     json
// @Param       slug   path  string true  "Space slug"
// @Param       limit  query int    false "Page size (default 50)"
// @Param       offset query int    false "Items to skip"
// @Success     200 {object} utils.Page[domain.Note]
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug}/notes [get]
func (h *Handlers) ListNotes(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	offset := utils.AtoiDefault(c.Query("offset"), 0)

	page, err := h.notes.List(c.Request.Context(), sp.Slug, limit, offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetNote godoc
// @ID          getNote
// @Summary     Get a note by number (members only)
// @Tags        Notes
// @Produce     json
// @Param       slug   path string true "Space slug"
// @Param       number path int    true "Note number"
// @Success     200 {object} domain.Note
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space or note not found"
// @Router      /spaces/{slug}/notes/{number} [get]
func (h *Handlers) GetNote(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}
	number, valid := noteNumber(c)
	if !valid {
		return
	}

	n, err := h.notes.Get(c.Request.Context(), sp.Slug, number)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, n)
}

// SearchNotes godoc
// @ID          searchNotes
// @Summary     Search notes with a structured filter (members only)
// @Description Filter and order are passed to the storage query engine as-is; shapes the store rejects surface as errors.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       slug path string true "Space slug"
// @Param       body body handlers.SearchNotesRequest true "Search payload"
// @Success     200 {object} utils.Page[domain.Note]
// @Failure     403 {object} handlers.ErrorResponse "Space membership required"
// @Failure     404 {object} handlers.ErrorResponse "Space not found"
// @Router      /spaces/{slug}/notes/search [post]
func (h *Handlers) SearchNotes(c *gin.Context) {
	_, sp, allowed := h.requireMember(c, c.Param("slug"))
	if !allowed {
		return
	}

	var req SearchNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid search payload")
		return
	}

	page, err := h.notes.Search(c.Request.Context(), sp.Slug, req.Filter, req.Order, req.Limit, req.Offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}
