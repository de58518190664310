package store

import (
	"context"

	"github.com/harentsoaR/clinic-api/internal/models"
)

var patientColumns = []string{"name", "age", "gender", "phone", "email", "address", "medical_history"}

// ListPatients returns the patients created by ownerID, newest first.
func (s *Store) ListPatients(ctx context.Context, ownerID uint) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("created_by_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&patients).Error
	return patients, err
}

// PatientByID loads a patient regardless of owner.
func (s *Store) PatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	if err := s.db.WithContext(ctx).Preload("CreatedBy").First(&p, id).Error; err != nil {
		return nil, notFound(err, "Patient")
	}
	return &p, nil
}

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	db := s.db.WithContext(ctx)
	if err := db.Omit("CreatedBy").Create(p).Error; err != nil {
		return constraint(err, "create patient")
	}
	return db.Preload("CreatedBy").First(p, p.ID).Error
}

// UpdatePatient writes the client-editable columns only; the owner and
// creation time are never touched.
func (s *Store) UpdatePatient(ctx context.Context, p *models.Patient) error {
	err := s.db.WithContext(ctx).Model(p).Select(patientColumns).Updates(p).Error
	return constraint(err, "update patient")
}

func (s *Store) DeletePatient(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Patient{}, id).Error
}
