package model

import "time"

// Task is an independent to-do entry owned by a user. Tasks are siblings of
// work orders, not derived from them.
type Task struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:256;not null" json:"title"`
	Status    string     `gorm:"size:32;not null;index" json:"status"`
	DueDate   *time.Time `json:"due_date"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Associations
	Owner User `gorm:"foreignKey:UserID" json:"-"`
}
