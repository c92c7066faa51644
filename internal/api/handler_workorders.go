package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/mw"
	"rectiflex-backend/internal/parse"
	"rectiflex-backend/internal/report"
)

type workOrderRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Task        string `json:"task"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	AssignedTo  *int64 `json:"assigned_to"`
}

// ListWorkOrders returns the work orders created by the caller, newest first.
func (h *Handler) ListWorkOrders(c *gin.Context) {
	orders, err := h.store.ListWorkOrdersByCreator(c.Request.Context(), mw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve work orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreateWorkOrder creates a work order directly from a user form. Priority is
// taken from the request, not derived; the classifier only runs on the
// maintenance-log path.
func (h *Handler) CreateWorkOrder(c *gin.Context) {
	var req workOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := parse.OptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo := &model.WorkOrder{
		Title:       req.Title,
		Description: req.Description,
		Task:        req.Task,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     dueDate,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   mw.UserID(c),
	}
	if wo.Status == "" {
		wo.Status = model.StatusPending
	}
	if wo.Priority == "" {
		wo.Priority = model.PriorityNormal
	}

	if err := h.store.CreateWorkOrder(c.Request.Context(), wo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create work order"})
		return
	}
	c.JSON(http.StatusCreated, wo)
}

// GetWorkOrder returns a single work order by ID.
func (h *Handler) GetWorkOrder(c *gin.Context) {
	wo, ok := h.loadWorkOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wo)
}

// UpdateWorkOrder applies field edits to an existing work order. Priority is
// whatever the request says; it is never re-derived from the description.
func (h *Handler) UpdateWorkOrder(c *gin.Context) {
	wo, ok := h.loadWorkOrder(c)
	if !ok {
		return
	}

	var req workOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := parse.OptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo.Title = req.Title
	wo.Description = req.Description
	wo.Task = req.Task
	if req.Status != "" {
		wo.Status = req.Status
	}
	if req.Priority != "" {
		wo.Priority = req.Priority
	}
	wo.DueDate = dueDate
	wo.AssignedTo = req.AssignedTo

	if err := h.store.UpdateWorkOrder(c.Request.Context(), wo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update work order"})
		return
	}
	c.JSON(http.StatusOK, wo)
}

// DeleteWorkOrder removes a work order.
func (h *Handler) DeleteWorkOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return
	}

	if err := h.store.DeleteWorkOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete work order"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadWorkOrderPDF renders a work order as a downloadable PDF. Only the
// assignee, the creator, or an admin may download it.
func (h *Handler) DownloadWorkOrderPDF(c *gin.Context) {
	wo, ok := h.loadWorkOrder(c)
	if !ok {
		return
	}

	userID := mw.UserID(c)
	assigned := wo.AssignedTo != nil && *wo.AssignedTo == userID
	if !assigned && wo.CreatedBy != userID && !mw.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to download this work order"})
		return
	}

	pdf, err := report.RenderWorkOrderPDF(wo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render work order"})
		return
	}

	filename := fmt.Sprintf("work_order_%d.pdf", wo.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// loadWorkOrder resolves the :id parameter and fetches the work order,
// writing the error response itself when the lookup fails.
func (h *Handler) loadWorkOrder(c *gin.Context) (*model.WorkOrder, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work order ID"})
		return nil, false
	}

	wo, err := h.store.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "work order not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve work order"})
		return nil, false
	}
	return wo, true
}
