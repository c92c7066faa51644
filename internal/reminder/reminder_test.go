package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rectiflex-backend/config"
	"rectiflex-backend/internal/db"
	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
)

type recordingPublisher struct {
	events []notify.Event
}

func (p *recordingPublisher) Publish(event notify.Event) {
	p.events = append(p.events, event)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:reminder_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

func TestService_ScanOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)

	overdue := &model.WorkOrder{
		Title:       "Maintenance required for Lot B12",
		Description: "Based on maintenance log: leak",
		Status:      model.StatusPending,
		Priority:    model.PriorityNormal,
		CreatedBy:   1,
		DueDate:     &past,
	}
	require.NoError(t, s.CreateWorkOrder(ctx, overdue))

	future := now.Add(48 * time.Hour)
	require.NoError(t, s.CreateWorkOrder(ctx, &model.WorkOrder{
		Title:       "not due yet",
		Description: "d",
		Status:      model.StatusPending,
		Priority:    model.PriorityNormal,
		CreatedBy:   1,
		DueDate:     &future,
	}))

	pub := &recordingPublisher{}
	cfg := &config.Config{}
	cfg.Reminder.Enabled = true
	svc := NewService(cfg, s, pub, nil, func(id int64) string {
		return fmt.Sprintf("http://example.com/workorders/%d", id)
	})

	svc.ScanOnce(ctx)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, "Work order overdue: Maintenance required for Lot B12", event.Message)
	assert.Equal(t, notify.CategoryWarning, event.Category)
	assert.Equal(t, overdue.ID, event.Data["id"])
	assert.Equal(t, fmt.Sprintf("http://example.com/workorders/%d", overdue.ID), event.Data["url"])

	// A second scan must not re-announce the same still-overdue order.
	svc.ScanOnce(ctx)
	assert.Len(t, pub.events, 1)
}

func TestService_Run_Disabled(t *testing.T) {
	pub := &recordingPublisher{}
	cfg := &config.Config{}
	cfg.Reminder.Enabled = false
	cfg.Reminder.Interval = 10 * time.Millisecond

	svc := NewService(cfg, newTestStore(t), pub, nil, func(int64) string { return "" })

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled reminder service should return immediately")
	}
	assert.Empty(t, pub.events)
}
