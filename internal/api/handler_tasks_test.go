package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rectiflex-backend/internal/model"
)

func TestUpdateTaskStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "casey", "pw123456", "user")
	other := env.createUser(t, "jordan", "pw123456", "user")

	task := model.Task{Title: "Check filters", Status: "Pending", UserID: owner.ID}
	require.NoError(t, env.store.DB().Create(&task).Error)

	t.Run("owner can update", func(t *testing.T) {
		w := doJSON(t, env.routerAs(owner.ID, owner.Role), http.MethodPost, "/api/tasks/status", map[string]any{
			"task_id": task.ID,
			"status":  "Completed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		got, err := env.store.GetTask(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Completed", got.Status)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		w := doJSON(t, env.routerAs(other.ID, other.Role), http.MethodPost, "/api/tasks/status", map[string]any{
			"task_id": task.ID,
			"status":  "Cancelled",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		w := doJSON(t, env.routerAs(owner.ID, owner.Role), http.MethodPost, "/api/tasks/status", map[string]any{
			"task_id": 9999,
			"status":  "Completed",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListTasks(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "casey", "pw123456", "user")

	later := time.Now().UTC().Add(48 * time.Hour)
	sooner := time.Now().UTC().Add(24 * time.Hour)
	require.NoError(t, env.store.DB().Create(&model.Task{Title: "later", Status: "Pending", UserID: user.ID, DueDate: &later}).Error)
	require.NoError(t, env.store.DB().Create(&model.Task{Title: "sooner", Status: "Pending", UserID: user.ID, DueDate: &sooner}).Error)

	wo := model.WorkOrder{
		Title: "assigned to me", Description: "d",
		Status: model.StatusPending, Priority: model.PriorityNormal,
		CreatedBy: 99, AssignedTo: &user.ID,
	}
	require.NoError(t, env.store.DB().Create(&wo).Error)

	w := doJSON(t, env.routerAs(user.ID, user.Role), http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks              []model.Task      `json:"tasks"`
		AssignedWorkOrders []model.WorkOrder `json:"assigned_work_orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "sooner", resp.Tasks[0].Title, "tasks are ordered by due date")
	require.Len(t, resp.AssignedWorkOrders, 1)
	assert.Equal(t, "assigned to me", resp.AssignedWorkOrders[0].Title)
}
