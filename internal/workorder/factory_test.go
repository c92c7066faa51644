package workorder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rectiflex-backend/internal/db"
	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []notify.Event
}

func (p *recordingPublisher) Publish(event notify.Event) {
	p.events = append(p.events, event)
}

func newTestStore(t *testing.T) store.Store {
	dsn := fmt.Sprintf("file:factory_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

func testURL(id int64) string {
	return fmt.Sprintf("http://example.com/workorders/%d", id)
}

func TestFactory_CreateFromLog_Urgent(t *testing.T) {
	s := newTestStore(t)
	pub := &recordingPublisher{}
	factory := NewFactory(s, pub, testURL, true)

	mlog := &model.MaintenanceLog{
		Date:    time.Now().UTC(),
		Lot:     "B12",
		Details: "Pipe leaking, urgent",
		UserID:  7,
	}

	wo, err := factory.CreateFromLog(context.Background(), mlog)
	require.NoError(t, err)

	assert.Equal(t, "Urgent: Maintenance required for Lot B12", wo.Title)
	assert.Equal(t, "Based on maintenance log: Pipe leaking, urgent", wo.Description)
	assert.Equal(t, model.PriorityUrgent, wo.Priority)
	assert.Equal(t, model.StatusPending, wo.Status)
	assert.Equal(t, int64(7), wo.CreatedBy)
	assert.NotZero(t, wo.ID)

	// Urgent path fires the factory notification plus the escalation alert.
	require.Len(t, pub.events, 2)
	assert.Equal(t, wo.Title, pub.events[0].Message)
	assert.Equal(t, notify.CategoryDanger, pub.events[0].Category)
	assert.Equal(t, "Urgent: New work order for Lot B12", pub.events[1].Message)
	assert.Equal(t, notify.CategoryDanger, pub.events[1].Category)

	for _, event := range pub.events {
		assert.Equal(t, wo.ID, event.Data["id"])
		assert.Equal(t, wo.Description, event.Data["description"])
		assert.Equal(t, model.PriorityUrgent, event.Data["priority"])
		assert.Equal(t, testURL(wo.ID), event.Data["url"])
	}

	// The work order is persisted, not just returned.
	persisted, err := s.GetWorkOrder(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Equal(t, wo.Title, persisted.Title)
}

func TestFactory_CreateFromLog_Normal(t *testing.T) {
	s := newTestStore(t)
	pub := &recordingPublisher{}
	factory := NewFactory(s, pub, testURL, true)

	mlog := &model.MaintenanceLog{
		Date:    time.Now().UTC(),
		Lot:     "A4",
		Details: "Routine inspection",
		UserID:  3,
	}

	wo, err := factory.CreateFromLog(context.Background(), mlog)
	require.NoError(t, err)

	assert.Equal(t, "Maintenance required for Lot A4", wo.Title)
	assert.Equal(t, model.PriorityNormal, wo.Priority)
	assert.Equal(t, model.StatusPending, wo.Status)

	// Exactly one notification on the normal path.
	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.CategoryInfo, pub.events[0].Category)
}

func TestFactory_CreateFromLog_SingleEscalation(t *testing.T) {
	s := newTestStore(t)
	pub := &recordingPublisher{}
	factory := NewFactory(s, pub, testURL, false)

	mlog := &model.MaintenanceLog{
		Date:    time.Now().UTC(),
		Lot:     "C9",
		Details: "Compressor failure, immediate attention",
		UserID:  1,
	}

	wo, err := factory.CreateFromLog(context.Background(), mlog)
	require.NoError(t, err)
	assert.Equal(t, model.PriorityUrgent, wo.Priority)

	// With double escalation off the urgent path notifies once.
	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.CategoryDanger, pub.events[0].Category)
}
