package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krishnanpiyer/DF-Giving-Tree/internal/model"
)

// inventoryResponse wraps a listing with its counts, mirroring the totals the
// reservation page shows above the table.
type inventoryResponse struct {
	Total    int                   `json:"total"`
	Filtered int                   `json:"filtered"`
	Items    []model.InventoryItem `json:"items"`
}

// GetInventory handles the GET /api/inventory request. An optional "search"
// query filters the listing by case-insensitive substring match across all
// item fields.
func (h *Handler) GetInventory(c *gin.Context) {
	term := c.Query("search")

	all := h.store.Items()
	items := all
	if term != "" {
		items = h.store.Search(term)
	}

	c.JSON(http.StatusOK, inventoryResponse{
		Total:    len(all),
		Filtered: len(items),
		Items:    items,
	})
}
