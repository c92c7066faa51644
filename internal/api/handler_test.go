package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rectiflex-backend/config"
	"rectiflex-backend/internal/db"
	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/mw"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
	"rectiflex-backend/internal/workorder"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []notify.Event
}

func (p *recordingPublisher) Publish(event notify.Event) {
	p.events = append(p.events, event)
}

type testEnv struct {
	handler *Handler
	store   store.Store
	pub     *recordingPublisher
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	appStore := store.NewGormStore(gormDB)
	pub := &recordingPublisher{}

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Server.PublicBaseURL = "http://example.com"

	factory := workorder.NewFactory(appStore, pub, func(id int64) string {
		return fmt.Sprintf("http://example.com/workorders/%d", id)
	}, true)

	handler := NewHandler(appStore, factory, notify.NewHub(), nil, cfg)
	return &testEnv{handler: handler, store: appStore, pub: pub, cfg: cfg}
}

// routerAs builds an engine with the caller's identity preset, bypassing the
// token check so handlers can be exercised directly.
func (e *testEnv) routerAs(userID int64, role string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(mw.ContextUserID, userID)
		c.Set(mw.ContextRole, role)
		c.Next()
	})

	r.POST("/api/auth/login", e.handler.Login)
	r.GET("/api/auth/me", e.handler.Me)
	r.GET("/api/users", e.handler.ListUsers)
	r.GET("/api/maintenance", e.handler.ListMaintenanceLogs)
	r.POST("/api/maintenance", e.handler.CreateMaintenanceLog)
	r.GET("/api/workorders", e.handler.ListWorkOrders)
	r.POST("/api/workorders", e.handler.CreateWorkOrder)
	r.GET("/api/workorders/:id", e.handler.GetWorkOrder)
	r.PUT("/api/workorders/:id", e.handler.UpdateWorkOrder)
	r.DELETE("/api/workorders/:id", e.handler.DeleteWorkOrder)
	r.GET("/api/workorders/:id/pdf", e.handler.DownloadWorkOrderPDF)
	r.GET("/api/tasks", e.handler.ListTasks)
	r.POST("/api/tasks/status", e.handler.UpdateTaskStatus)
	r.GET("/api/dashboard", e.handler.GetDashboard)
	r.GET("/api/dashboard/charts", e.handler.GetChartData)
	r.PUT("/api/subscriptions", e.handler.PutSubscription)
	r.DELETE("/api/subscriptions", e.handler.DeleteSubscription)
	r.GET("/api/subscriptions", e.handler.GetSubscription)
	r.GET("/api/vapid_public_key", e.handler.GetVAPIDPublicKey)
	return r
}

func (e *testEnv) createUser(t *testing.T, username, password, role string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Role: role}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, e.store.DB().Create(user).Error)
	return user
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
