package store

import (
	"context"
	"strings"

	"github.com/harentsoaR/clinic-api/internal/models"
)

var doctorColumns = []string{
	"name", "specialization", "phone", "email", "experience_years",
	"qualification", "consultation_fee", "is_available",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DoctorFilter narrows ListDoctors. Zero values disable a filter.
type DoctorFilter struct {
	Specialization string // case-insensitive substring
	Available      *bool
}

func (s *Store) ListDoctors(ctx context.Context, f DoctorFilter) ([]models.Doctor, error) {
	q := s.db.WithContext(ctx).Model(&models.Doctor{})
	if f.Specialization != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Specialization)) + "%"
		q = q.Where(`LOWER(specialization) LIKE ? ESCAPE '\'`, pattern)
	}
	if f.Available != nil {
		q = q.Where("is_available = ?", *f.Available)
	}

	var doctors []models.Doctor
	err := q.Order("name ASC, id ASC").Find(&doctors).Error
	return doctors, err
}

func (s *Store) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err, "Doctor")
	}
	return &d, nil
}

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	return constraint(s.db.WithContext(ctx).Create(d).Error, "create doctor")
}

func (s *Store) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	err := s.db.WithContext(ctx).Model(d).Select(doctorColumns).Updates(d).Error
	return constraint(err, "update doctor")
}

// DeleteDoctor removes the doctor; its mappings go with it.
func (s *Store) DeleteDoctor(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Doctor{}, id).Error
}

// ActivePatientCounts returns, per doctor id, how many active mappings
// reference it. Doctors without active mappings are absent from the map.
func (s *Store) ActivePatientCounts(ctx context.Context, doctorIDs ...uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(doctorIDs))
	if len(doctorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DoctorID uint
		Total    int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.PatientDoctorMapping{}).
		Select("doctor_id, COUNT(*) AS total").
		Where("doctor_id IN ? AND is_active = ?", doctorIDs, true).
		Group("doctor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.DoctorID] = r.Total
	}
	return counts, nil
}
