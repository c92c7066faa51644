package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rectiflex-backend/internal/mw"
)

// GetDashboard returns the caller's entity counts and status breakdowns.
func (h *Handler) GetDashboard(c *gin.Context) {
	userID := mw.UserID(c)
	ctx := c.Request.Context()

	counts, err := h.store.DashboardCounts(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate counts"})
		return
	}

	taskStats, err := h.store.TaskStatusStats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate task stats"})
		return
	}

	workOrderStats, err := h.store.WorkOrderStatusStats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate work order stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":           counts,
		"task_stats":       taskStats,
		"work_order_stats": workOrderStats,
	})
}

// GetChartData returns the aggregates backing the dashboard charts: status
// breakdowns plus monthly maintenance-log counts over the trailing six months.
func (h *Handler) GetChartData(c *gin.Context) {
	userID := mw.UserID(c)
	ctx := c.Request.Context()

	taskStats, err := h.store.TaskStatusStats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate task stats"})
		return
	}

	maintenanceStats, err := h.store.MaintenanceMonthlyStats(ctx, userID, 6)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate maintenance stats"})
		return
	}

	workOrderStats, err := h.store.WorkOrderStatusStats(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate work order stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task_stats":        taskStats,
		"maintenance_stats": maintenanceStats,
		"work_order_stats":  workOrderStats,
	})
}
