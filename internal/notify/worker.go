package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"rectiflex-backend/internal/model"
)

// Push job reasons.
const (
	PushReasonUrgent  = "urgent"
	PushReasonOverdue = "overdue"
)

// PushJob asks the worker pool to push an alert about a work order.
type PushJob struct {
	WorkOrderID int64
	Reason      string
}

// PushSender defines the interface for sending a web push notification.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of PushSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers delivering web push alerts for urgent
// and overdue work orders.
type WorkerPool struct {
	size    int
	jobs    chan PushJob
	db      *gorm.DB
	webpush *webpush.Options
	sender  PushSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan PushJob, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Push worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Push worker %d processing work order %d (%s)", id, job.WorkOrderID, job.Reason)
			wp.pushForWorkOrder(ctx, job)
		case <-ctx.Done():
			log.Printf("Push worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(job PushJob) {
	wp.jobs <- job
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan PushJob {
	return wp.jobs
}

// pushForWorkOrder loads the work order, builds the alert payload, and sends
// it to every registered push subscription.
func (wp *WorkerPool) pushForWorkOrder(ctx context.Context, job PushJob) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching push subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := fmt.Sprintf("#%d", job.WorkOrderID)
	var wo model.WorkOrder
	if err := wp.db.WithContext(ctx).
		Select("title").
		First(&wo, job.WorkOrderID).Error; err != nil {
		log.Printf("Error fetching work order %d: %v", job.WorkOrderID, err)
	} else if wo.Title != "" {
		label = wo.Title
	}

	var message string
	switch job.Reason {
	case PushReasonOverdue:
		message = fmt.Sprintf("Work order overdue: %s", label)
	default:
		message = fmt.Sprintf("Urgent work order: %s", label)
	}

	payload, err := json.Marshal(map[string]any{
		"message": message,
		"id":      job.WorkOrderID,
		"reason":  job.Reason,
	})
	if err != nil {
		log.Printf("Error marshaling push payload for work order %d: %v", job.WorkOrderID, err)
		return
	}

	log.Printf("Sending %d push notifications for work order %d", len(subscriptions), job.WorkOrderID)
	for _, sub := range subscriptions {
		wp.sendPush(ctx, sub, payload)
	}
}

// sendPush sends a single web push notification.
func (wp *WorkerPool) sendPush(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending push notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
