// Group HTTP handlers.
//
// This file exposes REST endpoints for group resources:
//   - POST /groups       (create, optionally with initial members)
//   - GET  /groups/{id}  (fetch with current members)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/services"
)

// CreateGroupRequest is the JSON payload for creating a group. The id is a
// caller-supplied business key; members, when given, must all exist or the
// whole operation fails without creating the group.
type CreateGroupRequest struct {
	ID      string   `json:"id"   binding:"required" example:"flat-7b"`
	Name    string   `json:"name" binding:"required" example:"Flat 7B"`
	Members []string `json:"members,omitempty" example:"alice,bob"`
}

// GroupResponse is a group together with its member usernames.
type GroupResponse struct {
	Group   *domain.Group `json:"group"`
	Members []string      `json:"members"`
}

// CreateGroup godoc
// @ID          createGroup
// @Summary     Create a group
// @Description Creates a group under a caller-supplied id and atomically assigns the listed members.
// @Tags        Groups
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateGroupRequest true "Group payload"
// @Success     201 {object} handlers.GroupResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "A listed member does not exist"
// @Failure     409 {object} handlers.ErrorResponse "Group id already exists"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /groups [post]
func (h *Handlers) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id and name are required")
		return
	}

	g, members, err := h.groupSvc.Create(c.Request.Context(), req.ID, req.Name, req.Members)
	if err != nil {
		switch err {
		case services.ErrEmptyGroupID:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "a listed member does not exist")
		case services.ErrGroupExists:
			fail(c, http.StatusConflict, ErrCodeConflict, "group id already exists")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, GroupResponse{Group: g, Members: members})
}

// GetGroup godoc
// @ID          getGroup
// @Summary     Fetch a group with its members
// @Tags        Groups
// @Produce     json
// @Param       id path string true "Group id" example(flat-7b)
// @Success     200 {object} handlers.GroupResponse
// @Failure     404 {object} handlers.ErrorResponse "Group not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /groups/{id} [get]
func (h *Handlers) GetGroup(c *gin.Context) {
	g, users, err := h.groupSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case services.ErrGroupNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "group not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	members := make([]string, len(users))
	for i, u := range users {
		members[i] = u.Username
	}
	ok(c, http.StatusOK, GroupResponse{Group: g, Members: members})
}
