package model

import "time"

// Work order status values. The column is a free string so deployments can
// extend the lifecycle without a migration.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Work order priority values.
const (
	PriorityNormal = "Normal"
	PriorityUrgent = "Urgent"
)

// WorkOrder is an actionable item derived from a maintenance log or created
// directly by a user. Priority is fixed at creation time and never re-derived.
type WorkOrder struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:256;not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Task        string     `json:"task"`
	Status      string     `gorm:"size:32;not null;index" json:"status"`
	Priority    string     `gorm:"size:32;not null" json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *int64     `gorm:"index" json:"assigned_to"`
	CreatedBy   int64      `gorm:"index;not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"-"`
	Creator  *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

// IsUrgent reports whether the work order carries the urgent priority.
func (w *WorkOrder) IsUrgent() bool {
	return w.Priority == PriorityUrgent
}
