package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/models"
)

// ListActiveMappings returns the active mappings whose patient belongs to ownerID.
func (s *Store) ListActiveMappings(ctx context.Context, ownerID uint) ([]models.PatientDoctorMapping, error) {
	db := s.db.WithContext(ctx)
	owned := db.Model(&models.Patient{}).Select("id").Where("created_by_id = ?", ownerID)

	var mappings []models.PatientDoctorMapping
	err := db.Preload("Patient").Preload("Doctor").
		Where("patient_id IN (?) AND is_active = ?", owned, true).
		Order("assigned_date DESC, id DESC").
		Find(&mappings).Error
	return mappings, err
}

// ActiveMappingsForPatient returns the doctors currently assigned to a patient.
func (s *Store) ActiveMappingsForPatient(ctx context.Context, patientID uint) ([]models.PatientDoctorMapping, error) {
	var mappings []models.PatientDoctorMapping
	err := s.db.WithContext(ctx).Preload("Doctor").
		Where("patient_id = ? AND is_active = ?", patientID, true).
		Order("assigned_date DESC, id DESC").
		Find(&mappings).Error
	return mappings, err
}

// MappingByID loads a mapping, active or not, with its patient and doctor.
func (s *Store) MappingByID(ctx context.Context, id uint) (*models.PatientDoctorMapping, error) {
	var m models.PatientDoctorMapping
	if err := s.db.WithContext(ctx).Preload("Patient").Preload("Doctor").First(&m, id).Error; err != nil {
		return nil, notFound(err, "Mapping")
	}
	return &m, nil
}

func (s *Store) HasActiveMapping(ctx context.Context, patientID, doctorID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.PatientDoctorMapping{}).
		Where("patient_id = ? AND doctor_id = ? AND is_active = ?", patientID, doctorID, true).
		Count(&n).Error
	return n > 0, err
}

// AssignDoctor makes the (m.PatientID, m.DoctorID) assignment active.
//
// A soft-deleted row for the pair is reactivated in place by a conditional
// update; otherwise a new row is inserted. Concurrent callers are serialised
// by the row lock on update and by the unique pair index on insert, and the
// loser gets ErrDuplicateMapping. reactivated reports which path was taken.
func (s *Store) AssignDoctor(ctx context.Context, m *models.PatientDoctorMapping) (reactivated bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		m.ID = 0
		res := tx.Model(&models.PatientDoctorMapping{}).
			Where("patient_id = ? AND doctor_id = ? AND is_active = ?", m.PatientID, m.DoctorID, false).
			Updates(map[string]any{"is_active": true, "assigned_date": now, "notes": m.Notes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			reactivated = true
			return tx.Where("patient_id = ? AND doctor_id = ?", m.PatientID, m.DoctorID).First(m).Error
		}

		m.IsActive = true
		m.AssignedDate = now
		return tx.Omit(clause.Associations).Create(m).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, ErrDuplicateMapping
	}
	if err != nil {
		return false, constraint(err, "assign doctor")
	}
	return reactivated, nil
}

func (s *Store) UpdateMappingNotes(ctx context.Context, id uint, notes string) error {
	res := s.db.WithContext(ctx).Model(&models.PatientDoctorMapping{}).Where("id = ?", id).Update("notes", notes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Mapping not found")
	}
	return nil
}

// DeactivateMapping soft-deletes a mapping. The row stays.
func (s *Store) DeactivateMapping(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.PatientDoctorMapping{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Mapping not found")
	}
	return nil
}
