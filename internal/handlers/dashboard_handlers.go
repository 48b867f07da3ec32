package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns row counts for the admin dashboard
// GET /api/admin/stats
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to load dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
