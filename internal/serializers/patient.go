package serializers

import (
	"time"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// PatientInput is the full set of client-writable patient fields (create, PUT).
type PatientInput struct {
	Name           string        `json:"name" binding:"required,max=100"`
	Age            *int          `json:"age" binding:"required,min=0,max=150"`
	Gender         models.Gender `json:"gender" binding:"required,oneof=M F O"`
	Phone          string        `json:"phone" binding:"max=15"`
	Email          string        `json:"email" binding:"omitempty,email,max=254"`
	Address        string        `json:"address"`
	MedicalHistory string        `json:"medical_history"`
}

func (in *PatientInput) Apply(p *models.Patient) {
	p.Name = in.Name
	p.Age = *in.Age
	p.Gender = in.Gender
	p.Phone = in.Phone
	p.Email = in.Email
	p.Address = in.Address
	p.MedicalHistory = in.MedicalHistory
}

// PatientPatch carries only the fields a PATCH supplied.
type PatientPatch struct {
	Name           *string        `json:"name" binding:"omitempty,min=1,max=100"`
	Age            *int           `json:"age" binding:"omitempty,min=0,max=150"`
	Gender         *models.Gender `json:"gender" binding:"omitempty,oneof=M F O"`
	Phone          *string        `json:"phone" binding:"omitempty,max=15"`
	Email          *string        `json:"email" binding:"omitempty,optional_email,max=254"`
	Address        *string        `json:"address"`
	MedicalHistory *string        `json:"medical_history"`
}

func (in *PatientPatch) Apply(p *models.Patient) {
	set(&p.Name, in.Name)
	set(&p.Age, in.Age)
	set(&p.Gender, in.Gender)
	set(&p.Phone, in.Phone)
	set(&p.Email, in.Email)
	set(&p.Address, in.Address)
	set(&p.MedicalHistory, in.MedicalHistory)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type PatientView struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	Age            int           `json:"age"`
	Gender         models.Gender `json:"gender"`
	GenderDisplay  string        `json:"gender_display"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	Address        string        `json:"address"`
	MedicalHistory string        `json:"medical_history"`
	CreatedBy      string        `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Patient renders p; created_by is the owner's username.
func Patient(p *models.Patient) PatientView {
	return PatientView{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Gender:         p.Gender,
		GenderDisplay:  p.Gender.Display(),
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		CreatedBy:      p.CreatedBy.Username,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func Patients(ps []models.Patient) []PatientView {
	out := make([]PatientView, 0, len(ps))
	for i := range ps {
		out = append(out, Patient(&ps[i]))
	}
	return out
}
