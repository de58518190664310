package models

import "time"

// PatientDoctorMapping assigns a doctor to a patient. Rows are never removed
// by the API: unassigning flips IsActive. The (patient, doctor) pair is
// unique across active and inactive rows alike.
type PatientDoctorMapping struct {
	ID           uint      `gorm:"primaryKey"`
	PatientID    uint      `gorm:"not null;uniqueIndex:idx_mapping_patient_doctor"`
	Patient      Patient   `gorm:"constraint:OnDelete:CASCADE"`
	DoctorID     uint      `gorm:"not null;uniqueIndex:idx_mapping_patient_doctor;index"`
	Doctor       Doctor    `gorm:"constraint:OnDelete:CASCADE"`
	AssignedDate time.Time `gorm:"not null;index"`
	Notes        string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;index"`
}

// All returns every model in migration order.
func All() []any {
	return []any{&User{}, &Patient{}, &Doctor{}, &PatientDoctorMapping{}}
}
