package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"rectiflex-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(h.cfg.Server.RateLimitPerSec, h.cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(h.cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", h.Login)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(mw.Auth(h.cfg.Auth.JWTSecret))
		{
			authed.GET("/auth/me", h.Me)
			authed.GET("/users", h.ListUsers)

			authed.GET("/dashboard", caching, h.GetDashboard)
			authed.GET("/dashboard/charts", caching, h.GetChartData)

			authed.GET("/maintenance", h.ListMaintenanceLogs)
			authed.POST("/maintenance", h.CreateMaintenanceLog)

			authed.GET("/workorders", h.ListWorkOrders)
			authed.POST("/workorders", h.CreateWorkOrder)
			authed.GET("/workorders/:id", h.GetWorkOrder)
			authed.PUT("/workorders/:id", h.UpdateWorkOrder)
			authed.DELETE("/workorders/:id", h.DeleteWorkOrder)
			authed.GET("/workorders/:id/pdf", h.DownloadWorkOrderPDF)

			authed.GET("/tasks", h.ListTasks)
			authed.POST("/tasks/status", h.UpdateTaskStatus)

			authed.GET("/notifications/ws", h.NotificationsWebsocket)

			authed.GET("/subscriptions", h.GetSubscription)
			authed.PUT("/subscriptions", h.PutSubscription)
			authed.DELETE("/subscriptions", h.DeleteSubscription)
		}
	}

	return r
}
