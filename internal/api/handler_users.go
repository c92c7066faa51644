package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all accounts, for populating assignee pickers.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}
