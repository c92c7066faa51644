package model

import "time"

// PushSubscription holds a browser push registration. Subscribed endpoints
// receive urgent and overdue work-order alerts even when no websocket client
// is connected.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
