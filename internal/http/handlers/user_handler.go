// User HTTP handlers.
//
// This file exposes REST endpoints for user resources:
//   - POST   /users             (create)
//   - GET    /users             (list, paginated)
//   - GET    /users/{username}  (fetch)
//   - PATCH  /users/{username}  (partial update)
//   - DELETE /users/{username}  (cascading delete, returns removal counts)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/services"
	"github.com/mvasila/go-grocer-backend/internal/utils"
)

// CreateUserRequest is the JSON payload for registering a user.
type CreateUserRequest struct {
	Username  string `json:"username"   binding:"required" example:"alice"`
	FirstName string `json:"first_name" binding:"required" example:"Alice"`
	LastName  string `json:"last_name"  binding:"required" example:"Miller"`
}

// UserListResponse is the paginated envelope for GET /users.
type UserListResponse struct {
	Users    []domain.User `json:"users"`
	Page     int           `json:"page"     example:"1"`
	PageSize int           `json:"page_size" example:"20"`
	Total    int64         `json:"total"    example:"42"`
}

// DeleteUserResponse reports what the cascading delete removed.
type DeleteUserResponse struct {
	ItemsRemoved  int64 `json:"items_removed"  example:"3"`
	FavorsRemoved int64 `json:"favors_removed" example:"2"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user
// @Description Creates a user with a unique username. Names must be non-blank.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateUserRequest true "User payload"
// @Success     201 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     409 {object} handlers.ErrorResponse "Username already exists"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, first_name and last_name are required")
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), req.Username, req.FirstName, req.LastName)
	if err != nil {
		switch err {
		case services.ErrEmptyUsername, services.ErrEmptyName:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case services.ErrUsernameTaken:
			fail(c, http.StatusConflict, ErrCodeConflict, "username already exists")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Description Returns a page of users ordered by username.
// @Tags        Users
// @Produce     json
// @Param       page      query int false "Page number (1-based)"  default(1)
// @Param       page_size query int false "Page size (max 100)"    default(20)
// @Success     200 {object} handlers.UserListResponse
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	page, pageSize := utils.PageParams(c.Query("page"), c.Query("page_size"))

	users, total, err := h.userSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, UserListResponse{
		Users:    users,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user
// @Tags        Users
// @Produce     json
// @Param       username path string true "Username" example(alice)
// @Success     200 {object} domain.User
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Partially update a user
// @Description Applies only the supplied fields. Set group_id to null to leave the group.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       username path string             true "Username" example(alice)
// @Param       body     body domain.UserPatch   true "Sparse field set"
// @Success     200 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse "No fields supplied"
// @Failure     404 {object} handlers.ErrorResponse "User or target group not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username} [patch]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var patch domain.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed patch body")
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), c.Param("username"), patch)
	if err != nil {
		switch err {
		case services.ErrNoFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "no fields supplied")
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrGroupNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "group not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user and everything that references it
// @Description Removes the user, all list items it owns, and all favors referencing the user or those items, atomically.
// @Tags        Users
// @Produce     json
// @Param       username path string true "Username" example(alice)
// @Success     200 {object} handlers.DeleteUserResponse
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	items, favors, err := h.userSvc.Delete(c.Request.Context(), c.Param("username"))
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, DeleteUserResponse{ItemsRemoved: items, FavorsRemoved: favors})
}
