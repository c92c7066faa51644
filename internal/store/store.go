package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rectiflex-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateMaintenanceLog(ctx context.Context, log *model.MaintenanceLog) error
	ListMaintenanceLogs(ctx context.Context, userID int64) ([]model.MaintenanceLog, error)

	CreateWorkOrder(ctx context.Context, wo *model.WorkOrder) error
	GetWorkOrder(ctx context.Context, id int64) (*model.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, wo *model.WorkOrder) error
	DeleteWorkOrder(ctx context.Context, id int64) error
	ListWorkOrdersByCreator(ctx context.Context, userID int64) ([]model.WorkOrder, error)
	ListWorkOrdersByAssignee(ctx context.Context, userID int64) ([]model.WorkOrder, error)
	ListOverdueWorkOrders(ctx context.Context, now time.Time) ([]model.WorkOrder, error)

	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]model.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) error

	UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)

	DashboardCounts(ctx context.Context, userID int64) (*DashboardCounts, error)
	TaskStatusStats(ctx context.Context, userID int64) ([]StatusCount, error)
	WorkOrderStatusStats(ctx context.Context, userID int64) ([]StatusCount, error)
	MaintenanceMonthlyStats(ctx context.Context, userID int64, months int) ([]MonthCount, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying GORM handle for handlers that need ad-hoc queries.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormStore) CreateMaintenanceLog(ctx context.Context, log *model.MaintenanceLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create maintenance log: %w", err)
	}
	return nil
}

func (s *gormStore) ListMaintenanceLogs(ctx context.Context, userID int64) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *gormStore) CreateWorkOrder(ctx context.Context, wo *model.WorkOrder) error {
	if err := s.db.WithContext(ctx).Create(wo).Error; err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}
	return nil
}

func (s *gormStore) GetWorkOrder(ctx context.Context, id int64) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	if err := s.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		First(&wo, id).Error; err != nil {
		return nil, err
	}
	return &wo, nil
}

func (s *gormStore) UpdateWorkOrder(ctx context.Context, wo *model.WorkOrder) error {
	if err := s.db.WithContext(ctx).Save(wo).Error; err != nil {
		return fmt.Errorf("failed to update work order %d: %w", wo.ID, err)
	}
	return nil
}

func (s *gormStore) DeleteWorkOrder(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&model.WorkOrder{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete work order %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) ListWorkOrdersByCreator(ctx context.Context, userID int64) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) ListWorkOrdersByAssignee(ctx context.Context, userID int64) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.db.WithContext(ctx).
		Where("assigned_to = ?", userID).
		Order("due_date").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) ListOverdueWorkOrders(ctx context.Context, now time.Time) ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	if err := s.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status IN ?", []string{model.StatusPending, model.StatusInProgress}).
		Order("due_date").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *gormStore) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *gormStore) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) UpsertPushSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(sub).Error
}

func (s *gormStore) DeletePushSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}

func (s *gormStore) ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *gormStore) DashboardCounts(ctx context.Context, userID int64) (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := s.db.WithContext(ctx).
		Model(&model.MaintenanceLog{}).
		Where("user_id = ?", userID).
		Count(&counts.MaintenanceLogs).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Where("created_by = ?", userID).
		Count(&counts.WorkOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("user_id = ?", userID).
		Count(&counts.Tasks).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *gormStore) TaskStatusStats(ctx context.Context, userID int64) ([]StatusCount, error) {
	return s.statusStats(ctx, &model.Task{}, "user_id", userID)
}

func (s *gormStore) WorkOrderStatusStats(ctx context.Context, userID int64) ([]StatusCount, error) {
	return s.statusStats(ctx, &model.WorkOrder{}, "created_by", userID)
}

func (s *gormStore) statusStats(ctx context.Context, entity any, ownerColumn string, userID int64) ([]StatusCount, error) {
	var stats []StatusCount
	if err := s.db.WithContext(ctx).
		Model(entity).
		Select("status, COUNT(*) as count").
		Where(ownerColumn+" = ?", userID).
		Group("status").
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("status aggregation failed: %w", err)
	}
	return stats, nil
}

// MaintenanceMonthlyStats buckets the caller's maintenance logs by month for
// the trailing window. Bucketing happens in Go so the query stays portable
// across the postgres and sqlite drivers.
func (s *gormStore) MaintenanceMonthlyStats(ctx context.Context, userID int64, months int) ([]MonthCount, error) {
	cutoff := time.Now().UTC().AddDate(0, -months, 0)

	var logs []model.MaintenanceLog
	if err := s.db.WithContext(ctx).
		Select("date").
		Where("user_id = ? AND date >= ?", userID, cutoff).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, l := range logs {
		buckets[l.Date.Format("2006-01")]++
	}

	stats := make([]MonthCount, 0, len(buckets))
	for month, count := range buckets {
		stats = append(stats, MonthCount{Month: month, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Month < stats[j].Month })
	return stats, nil
}
