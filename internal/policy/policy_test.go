package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harentsoaR/clinic-api/internal/models"
)

func TestAuthorize_Patient(t *testing.T) {
	p := &models.Patient{ID: 1, CreatedByID: 7}

	for _, op := range []Operation{Read, Create, Update, Delete} {
		assert.True(t, Authorize(7, p, op), "owner op %d", op)
	}
	assert.True(t, Authorize(8, p, Read))
	assert.False(t, Authorize(8, p, Update))
	assert.False(t, Authorize(8, p, Delete))
	assert.False(t, Authorize(8, p, Create))
}

func TestAuthorize_MappingIsTransitive(t *testing.T) {
	m := &models.PatientDoctorMapping{
		ID:        3,
		PatientID: 1,
		Patient:   models.Patient{ID: 1, CreatedByID: 7},
	}

	assert.True(t, Authorize(7, m, Read))
	assert.True(t, Authorize(7, m, Delete))
	// No read-only carve-out for mappings.
	assert.False(t, Authorize(8, m, Read))
	assert.False(t, Authorize(8, m, Update))
}

func TestAuthorize_MappingWithoutLoadedPatient(t *testing.T) {
	m := &models.PatientDoctorMapping{ID: 3, PatientID: 1}
	assert.False(t, Authorize(7, m, Read))
}

func TestAuthorize_DoctorIsShared(t *testing.T) {
	d := &models.Doctor{ID: 2}
	assert.True(t, Authorize(7, d, Read))
	assert.True(t, Authorize(8, d, Update))
	assert.True(t, Authorize(9, d, Delete))
}

func TestAuthorize_Denials(t *testing.T) {
	assert.False(t, Authorize(0, &models.Doctor{}, Read), "anonymous caller")
	assert.False(t, Authorize(7, &models.User{ID: 7}, Read), "unknown kind")
	assert.False(t, Authorize(7, &models.Patient{ID: 1}, Update), "owner not set")
}
