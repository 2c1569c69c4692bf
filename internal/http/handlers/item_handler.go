// List item HTTP handlers.
//
// This file exposes REST endpoints for a user's personal list items:
//   - POST   /users/{username}/items        (add)
//   - GET    /users/{username}/items        (list with fulfillment status, ETag support)
//   - PUT    /users/{username}/items/{id}   (replace name/priority)
//   - DELETE /users/{username}/items/{id}   (remove, cascades to the favor)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/repo"
	"github.com/mvasila/go-grocer-backend/internal/services"
)

// ItemRequest is the JSON payload for adding or replacing a list item.
type ItemRequest struct {
	ItemName string `json:"item_name" binding:"required"          example:"Milk"`
	Priority int    `json:"priority"  binding:"required,min=1,max=3" example:"2"`
}

// ItemListResponse is the envelope for GET /users/{username}/items.
type ItemListResponse struct {
	Items []domain.ListItem `json:"items"`
}

// itemID parses the :id path parameter; a non-numeric id is a 400.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item id must be a positive integer")
		return 0, false
	}
	return id, true
}

// CreateItem godoc
// @ID          createItem
// @Summary     Add an item to a user's list
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       username path string               true "Owner username" example(alice)
// @Param       body     body handlers.ItemRequest true "Item payload"
// @Success     201 {object} domain.ListItem
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username}/items [post]
func (h *Handlers) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item_name and priority (1-3) are required")
		return
	}

	it, err := h.itemSvc.Create(c.Request.Context(), c.Param("username"), req.ItemName, req.Priority)
	if err != nil {
		failItemErr(c, err)
		return
	}
	ok(c, http.StatusCreated, it)
}

// ListItems godoc
// @ID          listItems
// @Summary     List a user's items
// @Description Returns the user's items with their favor, if fulfilled. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Items
// @Produce     json
// @Param       username       path   string true  "Owner username" example(alice)
// @Param       If-None-Match  header string false "Return 304 if ETag matches" example(W/\"abc123\")
// @Success     200 {object} handlers.ItemListResponse
// @Header      200 {string} ETag "Weak ETag for current result"
// @Success     304 {string} string "Not Modified"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{username}/items [get]
func (h *Handlers) ListItems(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.itemSvc.(*services.ItemService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		if owner, err := repo.GetUserByUsername(ctx, db, username); err == nil {
			count, maxTS, err := repo.ItemsStats(ctx, db, owner.ID)
			if err == nil {
				var ts int64
				if maxTS != nil {
					ts = maxTS.Unix()
				}
				etag := fmt.Sprintf(`W/"items:%s:%d:%d"`, username, count, ts)
				c.Header("ETag", etag)
				if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
					c.Status(http.StatusNotModified)
					return
				}
			}
		}
	}

	items, err := h.itemSvc.List(ctx, username)
	if err != nil {
		failItemErr(c, err)
		return
	}
	ok(c, http.StatusOK, ItemListResponse{Items: items})
}

// UpdateItem godoc
// @ID          updateItem
// @Summary     Replace an item's name and priority
// @Description Validates ownership: an item owned by another user reads as not found. The item's favor is untouched.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       username path string               true "Owner username" example(alice)
// @Param       id       path int                  true "Item id"        example(10)
// @Param       body     body handlers.ItemRequest true "Item payload"
// @Success     200 {object} domain.ListItem
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "User or item not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username}/items/{id} [put]
func (h *Handlers) UpdateItem(c *gin.Context) {
	id, okID := itemID(c)
	if !okID {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item_name and priority (1-3) are required")
		return
	}

	it, err := h.itemSvc.Update(c.Request.Context(), c.Param("username"), id, req.ItemName, req.Priority)
	if err != nil {
		failItemErr(c, err)
		return
	}
	ok(c, http.StatusOK, it)
}

// DeleteItem godoc
// @ID          deleteItem
// @Summary     Remove an item from a user's list
// @Description Deletes the item and, atomically, the favor attached to it if one exists.
// @Tags        Items
// @Produce     json
// @Param       username path string true "Owner username" example(alice)
// @Param       id       path int    true "Item id"        example(10)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "User or item not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /users/{username}/items/{id} [delete]
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, okID := itemID(c)
	if !okID {
		return
	}

	if err := h.itemSvc.Delete(c.Request.Context(), c.Param("username"), id); err != nil {
		failItemErr(c, err)
		return
	}
	noContent(c)
}

// failItemErr translates item service errors into HTTP results.
func failItemErr(c *gin.Context, err error) {
	switch err {
	case services.ErrEmptyItemName, services.ErrInvalidPriority:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case services.ErrUserNotFound:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case services.ErrItemNotFound:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "list item not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
