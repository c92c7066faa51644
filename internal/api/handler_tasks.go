package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rectiflex-backend/internal/mw"
)

// ListTasks returns the caller's tasks ordered by due date, together with the
// work orders assigned to them.
func (h *Handler) ListTasks(c *gin.Context) {
	userID := mw.UserID(c)
	ctx := c.Request.Context()

	tasks, err := h.store.ListTasks(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	assigned, err := h.store.ListWorkOrdersByAssignee(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve assigned work orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":                tasks,
		"assigned_work_orders": assigned,
	})
}

type updateTaskStatusRequest struct {
	TaskID int64  `json:"task_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateTaskStatus sets a new status on one of the caller's own tasks.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	var req updateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	task, err := h.store.GetTask(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve task"})
		return
	}

	if task.UserID != mw.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "task belongs to another user"})
		return
	}

	if err := h.store.UpdateTaskStatus(ctx, req.TaskID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
