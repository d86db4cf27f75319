package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// AdminHandler serves the back-office overview
type AdminHandler struct {
	Stats database.StatsStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(stats database.StatsStore) *AdminHandler {
	return &AdminHandler{Stats: stats}
}

// Overview returns platform-wide totals. Admin only.
func (h *AdminHandler) Overview(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin only"})
		return
	}

	counts, err := h.Stats.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
