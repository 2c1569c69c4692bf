// Shopping list HTTP handler.
//
// This file exposes the read-only consolidation endpoint:
//   - GET /shopping-list
//
// The endpoint is a pure read over the unfulfilled items and is safe to poll.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mvasila/go-grocer-backend/internal/consolidation"
)

// ShoppingListResponse is the envelope for GET /shopping-list.
type ShoppingListResponse struct {
	Entries []consolidation.Entry `json:"entries"`
}

// GetShoppingList godoc
// @ID          getShoppingList
// @Summary     Build the consolidated shopping list
// @Description Groups every member's unfulfilled items by exact item name. Entries are sorted by name; within an entry item ids ascend with their owners aligned.
// @Tags        ShoppingList
// @Produce     json
// @Success     200 {object} handlers.ShoppingListResponse
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /shopping-list [get]
func (h *Handlers) GetShoppingList(c *gin.Context) {
	entries, err := h.listSvc.Build(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if entries == nil {
		entries = []consolidation.Entry{}
	}
	ok(c, http.StatusOK, ShoppingListResponse{Entries: entries})
}
