package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"rectiflex-backend/config"
	"rectiflex-backend/internal/model"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
	"rectiflex-backend/internal/workorder"
)

// Service periodically scans for overdue work orders and alerts stakeholders
// through the notification hub and the push worker pool.
type Service struct {
	cfg       *config.Config
	store     store.Store
	publisher notify.Publisher
	pushers   *notify.WorkerPool
	buildURL  workorder.URLBuilder

	// notified tracks work orders already alerted this process lifetime so
	// a still-overdue order is not re-announced every cycle.
	notified map[int64]struct{}
}

// NewService creates a reminder service. The push worker pool may be nil when
// web push is disabled.
func NewService(cfg *config.Config, s store.Store, publisher notify.Publisher, pushers *notify.WorkerPool, buildURL workorder.URLBuilder) *Service {
	return &Service{
		cfg:       cfg,
		store:     s,
		publisher: publisher,
		pushers:   pushers,
		buildURL:  buildURL,
		notified:  make(map[int64]struct{}),
	}
}

// Run starts the scan loop until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Reminder service is disabled. Not starting.")
		return
	}
	log.Println("Starting reminder service...")

	s.ScanOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service shutting down.")
			return
		case <-timer.C:
			s.ScanOnce(ctx)
			timer.Reset(s.cfg.Reminder.Interval)
		}
	}
}

// ScanOnce performs a single pass over overdue work orders.
func (s *Service) ScanOnce(ctx context.Context) {
	now := time.Now().UTC()

	overdue, err := s.store.ListOverdueWorkOrders(ctx, now)
	if err != nil {
		log.Printf("Error fetching overdue work orders: %v", err)
		return
	}
	if len(overdue) == 0 {
		return
	}

	var fresh []model.WorkOrder
	for _, wo := range overdue {
		if _, seen := s.notified[wo.ID]; !seen {
			fresh = append(fresh, wo)
		}
	}
	if len(fresh) == 0 {
		return
	}

	log.Printf("Dispatching reminders for %d overdue work orders", len(fresh))
	for _, wo := range fresh {
		s.publisher.Publish(notify.Event{
			Message:  fmt.Sprintf("Work order overdue: %s", wo.Title),
			Category: notify.CategoryWarning,
			Data: map[string]any{
				"id":          wo.ID,
				"description": wo.Description,
				"priority":    wo.Priority,
				"url":         s.buildURL(wo.ID),
			},
		})
		if s.pushers != nil {
			s.pushers.Dispatch(notify.PushJob{WorkOrderID: wo.ID, Reason: notify.PushReasonOverdue})
		}
		s.notified[wo.ID] = struct{}{}
	}
}
