package models

import "time"

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:254" json:"email"`
	FirstName  string    `gorm:"size:150" json:"first_name"`
	LastName   string    `gorm:"size:150" json:"last_name"`
	Password   string    `gorm:"size:128;not null" json:"-"` // bcrypt hash
	IsActive   bool      `gorm:"not null" json:"-"`
	DateJoined time.Time `gorm:"autoCreateTime" json:"-"`
}
