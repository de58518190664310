package serializers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/models"
)

// decimal(10,2): at most 8 digits before the point.
var maxFee = decimal.New(1, 8)

type DoctorInput struct {
	Name            string           `json:"name" binding:"required,max=100"`
	Specialization  string           `json:"specialization" binding:"required,max=100"`
	Phone           string           `json:"phone" binding:"required,max=15"`
	Email           string           `json:"email" binding:"required,email,max=254"`
	ExperienceYears *int             `json:"experience_years" binding:"required,min=0"`
	Qualification   string           `json:"qualification" binding:"required,max=200"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" binding:"required"`
	IsAvailable     *bool            `json:"is_available"`
}

func (in *DoctorInput) Validate() error {
	return validateFee(in.ConsultationFee)
}

// Apply copies the input onto d. is_available defaults to true.
func (in *DoctorInput) Apply(d *models.Doctor) {
	d.Name = in.Name
	d.Specialization = in.Specialization
	d.Phone = in.Phone
	d.Email = in.Email
	d.ExperienceYears = *in.ExperienceYears
	d.Qualification = in.Qualification
	d.ConsultationFee = *in.ConsultationFee
	d.IsAvailable = true
	set(&d.IsAvailable, in.IsAvailable)
}

type DoctorPatch struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Specialization  *string          `json:"specialization" binding:"omitempty,min=1,max=100"`
	Phone           *string          `json:"phone" binding:"omitempty,min=1,max=15"`
	Email           *string          `json:"email" binding:"omitempty,email,max=254"`
	ExperienceYears *int             `json:"experience_years" binding:"omitempty,min=0"`
	Qualification   *string          `json:"qualification" binding:"omitempty,min=1,max=200"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	IsAvailable     *bool            `json:"is_available"`
}

func (in *DoctorPatch) Validate() error {
	if in.ConsultationFee == nil {
		return nil
	}
	return validateFee(in.ConsultationFee)
}

func (in *DoctorPatch) Apply(d *models.Doctor) {
	set(&d.Name, in.Name)
	set(&d.Specialization, in.Specialization)
	set(&d.Phone, in.Phone)
	set(&d.Email, in.Email)
	set(&d.ExperienceYears, in.ExperienceYears)
	set(&d.Qualification, in.Qualification)
	set(&d.ConsultationFee, in.ConsultationFee)
	set(&d.IsAvailable, in.IsAvailable)
}

func validateFee(fee *decimal.Decimal) error {
	verr := &apperrors.ValidationError{}
	switch {
	case fee.IsNegative():
		verr.Add("consultation_fee: Ensure this value is greater than or equal to 0.")
	case !fee.Equal(fee.Round(2)):
		verr.Add("consultation_fee: Ensure that there are no more than 2 decimal places.")
	case fee.GreaterThanOrEqual(maxFee):
		verr.Add("consultation_fee: Ensure that there are no more than 10 digits in total.")
	}
	return verr.OrNil()
}

type DoctorView struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	ExperienceYears int       `json:"experience_years"`
	Qualification   string    `json:"qualification"`
	ConsultationFee string    `json:"consultation_fee"`
	IsAvailable     bool      `json:"is_available"`
	PatientCount    int64     `json:"patient_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PatientCounter supplies the active mapping count per doctor.
type PatientCounter interface {
	ActivePatientCounts(ctx context.Context, doctorIDs ...uint) (map[uint]int64, error)
}

// Doctors renders doctors with patient_count computed at read time.
func Doctors(ctx context.Context, counter PatientCounter, doctors ...models.Doctor) ([]DoctorView, error) {
	ids := make([]uint, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.ID)
	}
	counts, err := counter.ActivePatientCounts(ctx, ids...)
	if err != nil {
		return nil, err
	}

	out := make([]DoctorView, 0, len(doctors))
	for i := range doctors {
		out = append(out, doctorView(&doctors[i], counts[doctors[i].ID]))
	}
	return out, nil
}

// Doctor renders a single doctor.
func Doctor(ctx context.Context, counter PatientCounter, d *models.Doctor) (DoctorView, error) {
	views, err := Doctors(ctx, counter, *d)
	if err != nil {
		return DoctorView{}, err
	}
	return views[0], nil
}

func doctorView(d *models.Doctor, patientCount int64) DoctorView {
	return DoctorView{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		Phone:           d.Phone,
		Email:           d.Email,
		ExperienceYears: d.ExperienceYears,
		Qualification:   d.Qualification,
		ConsultationFee: d.ConsultationFee.StringFixed(2),
		IsAvailable:     d.IsAvailable,
		PatientCount:    patientCount,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
