package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/mw"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/parse"
)

type createMaintenanceLogRequest struct {
	Date    string `json:"date" binding:"required"`
	Lot     string `json:"lot" binding:"required"`
	Details string `json:"details" binding:"required"`
}

// CreateMaintenanceLog persists a new maintenance log and derives a work
// order from it.
func (h *Handler) CreateMaintenanceLog(c *gin.Context) {
	var req createMaintenanceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parse.Date(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mlog := &model.MaintenanceLog{
		Date:    date,
		Lot:     req.Lot,
		Details: req.Details,
		UserID:  mw.UserID(c),
	}
	if err := h.store.CreateMaintenanceLog(c.Request.Context(), mlog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create maintenance log"})
		return
	}

	wo, err := h.factory.CreateFromLog(c.Request.Context(), mlog)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create work order"})
		return
	}

	if wo.IsUrgent() && h.pushers != nil {
		h.pushers.Dispatch(notify.PushJob{WorkOrderID: wo.ID, Reason: notify.PushReasonUrgent})
	}

	c.JSON(http.StatusCreated, gin.H{
		"maintenance_log": mlog,
		"work_order":      wo,
	})
}

// ListMaintenanceLogs returns the caller's maintenance logs, newest first.
func (h *Handler) ListMaintenanceLogs(c *gin.Context) {
	logs, err := h.store.ListMaintenanceLogs(c.Request.Context(), mw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve maintenance logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
