package models

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Display returns the human readable label stored alongside the code.
func (g Gender) Display() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	}
	return string(g)
}

// Patient is owned by the user who created it. CreatedByID never changes.
type Patient struct {
	ID             uint      `gorm:"primaryKey"`
	Name           string    `gorm:"size:100;not null"`
	Age            int       `gorm:"not null;check:chk_patients_age,age >= 0 AND age <= 150"`
	Gender         Gender    `gorm:"size:1;not null"`
	Phone          string    `gorm:"size:15"`
	Email          string    `gorm:"size:254"`
	Address        string    `gorm:"type:text"`
	MedicalHistory string    `gorm:"type:text"`
	CreatedByID    uint      `gorm:"not null;index"`
	CreatedBy      User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}
