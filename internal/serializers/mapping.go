package serializers

import (
	"context"
	"errors"
	"time"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/policy"
)

const (
	MsgAlreadyAssigned = "This doctor is already assigned to this patient"
	MsgNotYourPatient  = "You can only assign doctors to your own patients"
)

type MappingInput struct {
	Patient uint   `json:"patient" binding:"required"`
	Doctor  uint   `json:"doctor" binding:"required"`
	Notes   string `json:"notes"`
}

type MappingPatch struct {
	Notes *string `json:"notes" binding:"required"`
}

// AssignmentLookup is the slice of the store assignment validation reads.
type AssignmentLookup interface {
	PatientByID(ctx context.Context, id uint) (*models.Patient, error)
	DoctorByID(ctx context.Context, id uint) (*models.Doctor, error)
	HasActiveMapping(ctx context.Context, patientID, doctorID uint) (bool, error)
}

// ValidateAssignment checks that both referenced rows exist, that the pair is
// not already actively assigned and that caller owns the patient. The
// duplicate and ownership checks are independent: every failing check is
// reported.
func (in *MappingInput) ValidateAssignment(ctx context.Context, lookup AssignmentLookup, caller uint) (*models.PatientDoctorMapping, error) {
	verr := &apperrors.ValidationError{}

	patient, err := lookup.PatientByID(ctx, in.Patient)
	if errors.Is(err, apperrors.ErrNotFound) {
		verr.Add("patient: Object does not exist.")
	} else if err != nil {
		return nil, err
	}
	doctor, err := lookup.DoctorByID(ctx, in.Doctor)
	if errors.Is(err, apperrors.ErrNotFound) {
		verr.Add("doctor: Object does not exist.")
	} else if err != nil {
		return nil, err
	}

	if patient != nil && doctor != nil {
		dup, err := lookup.HasActiveMapping(ctx, patient.ID, doctor.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			verr.Add(MsgAlreadyAssigned)
		}
	}
	if patient != nil && !policy.Authorize(caller, patient, policy.Create) {
		verr.Add(MsgNotYourPatient)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	m := &models.PatientDoctorMapping{
		PatientID: patient.ID,
		Patient:   *patient,
		DoctorID:  doctor.ID,
		Doctor:    *doctor,
		Notes:     in.Notes,
	}
	return m, nil
}

type MappingView struct {
	ID                   uint      `json:"id"`
	Patient              uint      `json:"patient"`
	Doctor               uint      `json:"doctor"`
	PatientName          string    `json:"patient_name"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	AssignedDate         time.Time `json:"assigned_date"`
	Notes                string    `json:"notes"`
	IsActive             bool      `json:"is_active"`
}

// Mapping renders m with names read from its loaded patient and doctor.
func Mapping(m *models.PatientDoctorMapping) MappingView {
	return MappingView{
		ID:                   m.ID,
		Patient:              m.PatientID,
		Doctor:               m.DoctorID,
		PatientName:          m.Patient.Name,
		DoctorName:           m.Doctor.Name,
		DoctorSpecialization: m.Doctor.Specialization,
		AssignedDate:         m.AssignedDate,
		Notes:                m.Notes,
		IsActive:             m.IsActive,
	}
}

func Mappings(ms []models.PatientDoctorMapping) []MappingView {
	out := make([]MappingView, 0, len(ms))
	for i := range ms {
		out = append(out, Mapping(&ms[i]))
	}
	return out
}

type AssignedDoctorView struct {
	ID           uint       `json:"id"`
	Doctor       DoctorView `json:"doctor"`
	AssignedDate time.Time  `json:"assigned_date"`
	Notes        string     `json:"notes"`
	IsActive     bool       `json:"is_active"`
}

type PatientAssignmentsView struct {
	Patient         PatientView          `json:"patient"`
	AssignedDoctors []AssignedDoctorView `json:"assigned_doctors"`
}

// PatientAssignments renders a patient with its active doctor assignments.
func PatientAssignments(ctx context.Context, counter PatientCounter, p *models.Patient, ms []models.PatientDoctorMapping) (PatientAssignmentsView, error) {
	doctors := make([]models.Doctor, 0, len(ms))
	for _, m := range ms {
		doctors = append(doctors, m.Doctor)
	}
	doctorViews, err := Doctors(ctx, counter, doctors...)
	if err != nil {
		return PatientAssignmentsView{}, err
	}

	assigned := make([]AssignedDoctorView, 0, len(ms))
	for i, m := range ms {
		assigned = append(assigned, AssignedDoctorView{
			ID:           m.ID,
			Doctor:       doctorViews[i],
			AssignedDate: m.AssignedDate,
			Notes:        m.Notes,
			IsActive:     m.IsActive,
		})
	}
	return PatientAssignmentsView{Patient: Patient(p), AssignedDoctors: assigned}, nil
}
