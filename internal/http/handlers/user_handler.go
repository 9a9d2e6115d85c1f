// User HTTP handlers.
//
// Endpoints:
//   - GET    /users/me        (current authenticated user)
//   - GET    /users           (list users, admin only)
//   - POST   /users           (create user, admin only)
//   - DELETE /users/:username (delete user, admin only)
//
// Responses expose only the username; authentication tokens are never
// echoed back.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/services"
)

// UserResponse is the public user representation. The token is hidden.
type UserResponse struct {
	Username string `json:"username" example:"alice"`
}

// CreateUserRequest is the JSON payload for creating a user. An empty token
// gets a generated one, returned once in the creation response.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Token    string `json:"token,omitempty" example:"s3cret"`
}

// CreatedUserResponse echoes the token exactly once, at creation time, so
// an admin can hand it to the new user.
type CreatedUserResponse struct {
	Username string `json:"username" example:"alice"`
	Token    string `json:"token" example:"s3cret"`
}

// Me godoc
// @ID          getCurrentUser
// @Summary     Get current user
// @Tags        Users
// @Produce     json
// @Success     200 {object} handlers.UserResponse
// @Failure     401 {object} handlers.ErrorResponse "Not authenticated"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, authed := currentUser(c)
	if !authed {
		failErr(c, services.ErrInvalidToken)
		return
	}
	ok(c, http.StatusOK, UserResponse{Username: u.Username})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users (admin only)
// @Tags        Users
// @Produce     json
// @Success     200 {array}  handlers.UserResponse
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	if _, authorized := h.requireAdmin(c); !authorized {
		return
	}
	users := h.users.All()
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{Username: u.Username})
	}
	ok(c, http.StatusOK, out)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user (admin only)
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateUserRequest true "User payload"
// @Success     201 {object} handlers.CreatedUserResponse
// @Failure     400 {object} handlers.ErrorResponse "Duplicate or invalid username"
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	if _, authorized := h.requireAdmin(c); !authorized {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "username is required")
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.Username, req.Token)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, CreatedUserResponse{Username: u.Username, Token: u.Token})
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user (admin only)
// @Tags        Users
// @Param       username path string true "Username"
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Cannot delete yourself"
// @Failure     403 {object} handlers.ErrorResponse "Admin privileges required"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Router      /users/{username} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	admin, authorized := h.requireAdmin(c)
	if !authorized {
		return
	}

	username := c.Param("username")
	if username == admin.Username {
		failErr(c, services.ErrSelfDelete)
		return
	}

	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
