package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor is shared by every authenticated user and has no owner.
type Doctor struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"size:100;not null;index"`
	Specialization  string          `gorm:"size:100;not null"`
	Phone           string          `gorm:"size:15;not null"`
	Email           string          `gorm:"size:254;not null"`
	ExperienceYears int             `gorm:"not null;check:chk_doctors_experience,experience_years >= 0"`
	Qualification   string          `gorm:"size:200;not null"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// No gorm default: a default tag would swallow an explicit false on insert.
	IsAvailable bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
