package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/store"
)

type reserveRequest struct {
	ShelterName string `json:"shelterName" binding:"required"`
	ClientID    string `json:"clientId" binding:"required"`
	Preference  int    `json:"preference" binding:"required"`
}

// PostReservation handles POST /api/inventory/:item_id/reservation. It
// records a ranked client preference on the item. A preference-limit
// rejection is a user-facing validation failure, reported as 422 with no
// state change.
func (h *Handler) PostReservation(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Reserve(itemID, req.ShelterName, req.ClientID, req.Preference); err != nil {
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrPreferenceLimit):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// GetReservationSeed handles GET /api/inventory/:item_id/reservation. It
// returns the current 1st-choice occupant as seed values for an edit form;
// the seed is empty when the item has no reservation.
func (h *Handler) GetReservationSeed(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	seed, err := h.store.ChangeSeed(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seed)
}

// DeleteReservation handles DELETE /api/inventory/:item_id/reservation.
// Removal is all-or-nothing per item; when the item transitions back to
// available a notification job is dispatched.
func (h *Handler) DeleteReservation(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	becameAvailable, err := h.store.RemoveReservation(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if becameAvailable && h.notifier != nil {
		h.notifier.Dispatch(itemID)
	}

	c.Status(http.StatusNoContent)
}
