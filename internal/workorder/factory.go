package workorder

import (
	"context"
	"fmt"
	"log"

	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
)

// URLBuilder resolves the public view URL for a work order. The factory has
// no routing context of its own, so the caller injects one.
type URLBuilder func(workOrderID int64) string

// Factory derives work orders from maintenance logs and announces them.
type Factory struct {
	store     store.Store
	publisher notify.Publisher
	buildURL  URLBuilder

	// escalateTwice keeps the second, distinctly-worded urgent alert in
	// addition to the factory's own notification. See the
	// notifications.escalation_notifies_twice config key.
	escalateTwice bool
}

// NewFactory creates a work-order factory with its collaborators injected.
func NewFactory(s store.Store, publisher notify.Publisher, buildURL URLBuilder, escalateTwice bool) *Factory {
	return &Factory{
		store:         s,
		publisher:     publisher,
		buildURL:      buildURL,
		escalateTwice: escalateTwice,
	}
}

// CreateFromLog classifies the log's details, persists a new pending work
// order, and broadcasts its creation. On the urgent path a second escalation
// notification fires when configured.
func (f *Factory) CreateFromLog(ctx context.Context, mlog *model.MaintenanceLog) (*model.WorkOrder, error) {
	priority := Classify(mlog.Details)
	urgent := priority == model.PriorityUrgent

	titlePrefix := ""
	if urgent {
		titlePrefix = "Urgent: "
	}

	wo := &model.WorkOrder{
		Title:       fmt.Sprintf("%sMaintenance required for Lot %s", titlePrefix, mlog.Lot),
		Description: fmt.Sprintf("Based on maintenance log: %s", mlog.Details),
		Status:      model.StatusPending,
		Priority:    priority,
		CreatedBy:   mlog.UserID,
	}

	if err := f.store.CreateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	log.Printf("Work order created: %d, Is urgent: %v", wo.ID, urgent)

	category := notify.CategoryInfo
	if urgent {
		category = notify.CategoryDanger
	}
	f.publisher.Publish(notify.Event{
		Message:  wo.Title,
		Category: category,
		Data:     f.payload(wo),
	})

	if urgent && f.escalateTwice {
		f.publisher.Publish(notify.Event{
			Message:  fmt.Sprintf("Urgent: New work order for Lot %s", mlog.Lot),
			Category: notify.CategoryDanger,
			Data:     f.payload(wo),
		})
	}

	return wo, nil
}

func (f *Factory) payload(wo *model.WorkOrder) map[string]any {
	return map[string]any{
		"id":          wo.ID,
		"description": wo.Description,
		"priority":    wo.Priority,
		"url":         f.buildURL(wo.ID),
	}
}
