package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// shelters is the fixed set of partner shelters reservations can be made for.
var shelters = []string{
	"New Bethlehem - Family Shelter",
	"FOY - Youth Shelter",
	"ROOTS - Young Adult Shelter near UW",
	"Sophia Way - Women's Shelter",
	"Porchlight - Men's Shelter",
}

// GetShelters handles the GET /api/shelters request.
func (h *Handler) GetShelters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shelters": shelters})
}
