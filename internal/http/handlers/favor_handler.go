// Favor HTTP handlers.
//
// This file exposes REST endpoints for the favor ledger:
//   - POST   /favors       (fulfill an item on someone's behalf)
//   - GET    /favors       (list a user's favors, filtered by role)
//   - GET    /favors/{id}  (fetch)
//   - PUT    /favors/{id}  (overwrite amount and reimbursement state)
//   - DELETE /favors/{id}  (undo, item returns to pending)
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mvasila/go-grocer-backend/internal/domain"
	"github.com/mvasila/go-grocer-backend/internal/services"
)

// CreateFavorRequest is the JSON payload for fulfilling a list item.
// Amount is a pointer so "missing" is distinguishable from zero: favors of
// zero value (freebies) are legal, an omitted amount is not.
type CreateFavorRequest struct {
	ItemID      int64    `json:"item_id"      binding:"required" example:"10"`
	ByUsername  string   `json:"by_username"  binding:"required" example:"bob"`
	ForUsername string   `json:"for_username" binding:"required" example:"alice"`
	Amount      *float64 `json:"amount"       binding:"required" example:"3.49"`
}

// UpdateFavorRequest is the JSON payload for a favor update. Both fields are
// required; reimbursed=false explicitly clears the reimbursement timestamp.
type UpdateFavorRequest struct {
	Reimbursed *bool    `json:"reimbursed" binding:"required" example:"true"`
	Amount     *float64 `json:"amount"     binding:"required" example:"3.49"`
}

// FavorListResponse is the envelope for GET /favors.
type FavorListResponse struct {
	Favors []domain.Favor `json:"favors"`
}

// favorID parses the :id path parameter; a non-numeric id is a 400.
func favorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "favor id must be a positive integer")
		return 0, false
	}
	return id, true
}

// CreateFavor godoc
// @ID          createFavor
// @Summary     Record a favor
// @Description Marks a pending item fulfilled: by_username bought it on behalf of for_username, who must own the item.
// @Tags        Favors
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateFavorRequest true "Favor payload"
// @Success     201 {object} domain.Favor
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "User or item not found"
// @Failure     409 {object} handlers.ErrorResponse "Item already has a favor"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /favors [post]
func (h *Handlers) CreateFavor(c *gin.Context) {
	var req CreateFavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item_id, by_username, for_username and amount are required")
		return
	}

	f, err := h.favorSvc.Create(c.Request.Context(), req.ItemID, req.ByUsername, req.ForUsername, req.Amount)
	if err != nil {
		switch err {
		case services.ErrMissingAmount, services.ErrNegativeAmount:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrItemNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "list item not found")
		case services.ErrItemFulfilled:
			fail(c, http.StatusConflict, ErrCodeConflict, "item already has a favor")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, f)
}

// ListFavors godoc
// @ID          listFavors
// @Summary     List a user's favors
// @Description Returns favors involving the user. role=given restricts to favors the user gave, role=received to favors received.
// @Tags        Favors
// @Produce     json
// @Param       username query string true  "Username"                     example(alice)
// @Param       role     query string false "given | received | all"       example(received)
// @Success     200 {object} handlers.FavorListResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing username"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /favors [get]
func (h *Handlers) ListFavors(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username query parameter is required")
		return
	}

	favors, err := h.favorSvc.List(c.Request.Context(), username, c.Query("role"))
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, FavorListResponse{Favors: favors})
}

// GetFavor godoc
// @ID          getFavor
// @Summary     Fetch a favor
// @Tags        Favors
// @Produce     json
// @Param       id path int true "Favor id" example(1)
// @Success     200 {object} domain.Favor
// @Failure     404 {object} handlers.ErrorResponse "Favor not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /favors/{id} [get]
func (h *Handlers) GetFavor(c *gin.Context) {
	id, okID := favorID(c)
	if !okID {
		return
	}

	f, err := h.favorSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrFavorNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "favor not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, f)
}

// UpdateFavor godoc
// @ID          updateFavor
// @Summary     Update a favor's amount and reimbursement state
// @Description Overwrites both fields. reimbursed=true stamps reimbursed_at now; false clears it (the old timestamp is discarded).
// @Tags        Favors
// @Accept      json
// @Produce     json
// @Param       id   path int                         true "Favor id" example(1)
// @Param       body body handlers.UpdateFavorRequest true "Update payload"
// @Success     200 {object} domain.Favor
// @Failure     400 {object} handlers.ErrorResponse "Invalid payload"
// @Failure     404 {object} handlers.ErrorResponse "Favor not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /favors/{id} [put]
func (h *Handlers) UpdateFavor(c *gin.Context) {
	id, okID := favorID(c)
	if !okID {
		return
	}
	var req UpdateFavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reimbursed and amount are required")
		return
	}

	f, err := h.favorSvc.Update(c.Request.Context(), id, req.Reimbursed, req.Amount)
	if err != nil {
		switch err {
		case services.ErrMissingReimbursed, services.ErrMissingAmount, services.ErrNegativeAmount:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case services.ErrFavorNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "favor not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, f)
}

// DeleteFavor godoc
// @ID          deleteFavor
// @Summary     Undo a favor
// @Description Removes the favor; its item returns to the pending state and reappears on the shared list.
// @Tags        Favors
// @Produce     json
// @Param       id path int true "Favor id" example(1)
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse "Favor not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /favors/{id} [delete]
func (h *Handlers) DeleteFavor(c *gin.Context) {
	id, okID := favorID(c)
	if !okID {
		return
	}

	if err := h.favorSvc.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case services.ErrFavorNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "favor not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
