// Package policy decides whether a caller may act on an entity.
//
// Each entity kind has a rule describing how its owner is derived and
// whether reads are open to every authenticated caller. Handlers call
// Authorize explicitly before acting on a loaded entity.
package policy

import "github.com/harentsoaR/clinic-api/internal/models"

type Operation int

const (
	Read Operation = iota
	Create
	Update
	Delete
)

// Mutating reports whether op changes state.
func (op Operation) Mutating() bool {
	return op != Read
}

type rule struct {
	// owner returns the owning user id; ok is false when it cannot be
	// derived, which always denies. A nil owner marks a shared resource.
	owner     func(entity any) (id uint, ok bool)
	openReads bool
}

var rules = map[string]rule{
	"patient": {
		owner:     directOwner,
		openReads: true,
	},
	"mapping": {
		owner: patientOwner,
	},
	"doctor": {},
}

func kindOf(entity any) string {
	switch entity.(type) {
	case *models.Patient:
		return "patient"
	case *models.PatientDoctorMapping:
		return "mapping"
	case *models.Doctor:
		return "doctor"
	}
	return ""
}

func directOwner(entity any) (uint, bool) {
	p, ok := entity.(*models.Patient)
	if !ok || p == nil || p.CreatedByID == 0 {
		return 0, false
	}
	return p.CreatedByID, true
}

// patientOwner resolves the owner through the mapping's patient, which must
// be loaded.
func patientOwner(entity any) (uint, bool) {
	m, ok := entity.(*models.PatientDoctorMapping)
	if !ok || m == nil || m.Patient.ID != m.PatientID {
		return 0, false
	}
	return directOwner(&m.Patient)
}

// Authorize reports whether caller may perform op on entity. Unknown entity
// types are denied.
func Authorize(caller uint, entity any, op Operation) bool {
	r, ok := rules[kindOf(entity)]
	if !ok || caller == 0 {
		return false
	}
	if r.owner == nil {
		return true
	}
	if r.openReads && !op.Mutating() {
		return true
	}
	owner, ok := r.owner(entity)
	return ok && owner == caller
}
