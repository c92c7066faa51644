package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account that can log maintenance and own work orders.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:128;not null" json:"username"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Role         string `gorm:"size:32;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the given plaintext matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
