package model

import "time"

// MaintenanceLog is a user-submitted record of an observed facility issue
// for a given lot. Logs are immutable once created.
type MaintenanceLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Lot       string    `gorm:"size:64;not null" json:"lot"`
	Details   string    `gorm:"not null" json:"details"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Author User `gorm:"foreignKey:UserID" json:"-"`
}
