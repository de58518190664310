package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/database/databasetest"
	"github.com/harentsoaR/clinic-api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(databasetest.Open(t))
}

func createUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "x", IsActive: true}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func createPatient(t *testing.T, s *Store, owner *models.User, name string) *models.Patient {
	t.Helper()
	p := &models.Patient{Name: name, Age: 30, Gender: models.GenderFemale, CreatedByID: owner.ID}
	require.NoError(t, s.CreatePatient(context.Background(), p))
	return p
}

func createDoctor(t *testing.T, s *Store, name, specialization string, available bool) *models.Doctor {
	t.Helper()
	d := &models.Doctor{
		Name:            name,
		Specialization:  specialization,
		Phone:           "555-0100",
		Email:           "doc@example.com",
		ExperienceYears: 10,
		Qualification:   "MD",
		ConsultationFee: decimal.RequireFromString("150.00"),
		IsAvailable:     available,
	}
	require.NoError(t, s.CreateDoctor(context.Background(), d))
	return d
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	createUser(t, s, "alice")

	err := s.CreateUser(context.Background(), &models.User{Username: "alice", Password: "y", IsActive: true})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.EqualError(t, err, "A user with that username already exists")
}

func TestUserLookups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "alice")

	got, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.IsActive)

	require.NoError(t, s.SetUserActive(ctx, u.ID, false))
	got, err = s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = s.UserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.SetUserActive(ctx, 999, true), apperrors.ErrNotFound)
}

func TestListPatients_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	alice := createPatient(t, s, a, "Alice")
	createPatient(t, s, b, "Bob")

	assert.Equal(t, "a", alice.CreatedBy.Username)

	list, err := s.ListPatients(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alice.ID, list[0].ID)

	list, err = s.ListPatients(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)
}

func TestUpdatePatient_KeepsOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	p := createPatient(t, s, a, "Alice")

	p.Name = "Alice Smith"
	p.Age = 0
	p.CreatedByID = b.ID
	require.NoError(t, s.UpdatePatient(ctx, p))

	got, err := s.PatientByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, 0, got.Age)
	assert.Equal(t, a.ID, got.CreatedByID)
}

func TestPatientAgeCheckConstraint(t *testing.T) {
	s := newTestStore(t)
	a := createUser(t, s, "a")
	err := s.CreatePatient(context.Background(), &models.Patient{Name: "Old", Age: 151, Gender: models.GenderMale, CreatedByID: a.ID})
	assert.Error(t, err)
}

func TestListDoctors_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createDoctor(t, s, "Dr. Smith", "Cardiology", true)
	createDoctor(t, s, "Dr. Adams", "Pediatric Cardiology", false)
	createDoctor(t, s, "Dr. Jones", "Dermatology", true)
	createDoctor(t, s, "Dr. Pct", "100%_odd", true)

	all, err := s.ListDoctors(ctx, DoctorFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Dr. Adams", all[0].Name)

	cardio, err := s.ListDoctors(ctx, DoctorFilter{Specialization: "CARDIO"})
	require.NoError(t, err)
	assert.Len(t, cardio, 2)

	yes := true
	availableCardio, err := s.ListDoctors(ctx, DoctorFilter{Specialization: "cardio", Available: &yes})
	require.NoError(t, err)
	require.Len(t, availableCardio, 1)
	assert.Equal(t, "Dr. Smith", availableCardio[0].Name)

	no := false
	unavailable, err := s.ListDoctors(ctx, DoctorFilter{Available: &no})
	require.NoError(t, err)
	require.Len(t, unavailable, 1)
	assert.False(t, unavailable[0].IsAvailable)

	literal, err := s.ListDoctors(ctx, DoctorFilter{Specialization: "%_"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "Dr. Pct", literal[0].Name)
}

func TestAssignDoctor_DuplicateAndReactivate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	p := createPatient(t, s, a, "Alice")
	d := createDoctor(t, s, "Dr. Smith", "Cardiology", true)

	first := &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: d.ID, Notes: "initial"}
	reactivated, err := s.AssignDoctor(ctx, first)
	require.NoError(t, err)
	assert.False(t, reactivated)
	assert.True(t, first.IsActive)
	assert.False(t, first.AssignedDate.IsZero())

	active, err := s.HasActiveMapping(ctx, p.ID, d.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = s.AssignDoctor(ctx, &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: d.ID})
	assert.ErrorIs(t, err, ErrDuplicateMapping)

	require.NoError(t, s.DeactivateMapping(ctx, first.ID))
	kept, err := s.MappingByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)

	again := &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: d.ID, Notes: "follow-up"}
	reactivated, err = s.AssignDoctor(ctx, again)
	require.NoError(t, err)
	assert.True(t, reactivated)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.IsActive)
	assert.Equal(t, "follow-up", again.Notes)
}

func TestAssignDoctor_MissingDoctor(t *testing.T) {
	s := newTestStore(t)
	a := createUser(t, s, "a")
	p := createPatient(t, s, a, "Alice")

	_, err := s.AssignDoctor(context.Background(), &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: 42})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestActivePatientCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	d := createDoctor(t, s, "Dr. Smith", "Cardiology", true)
	other := createDoctor(t, s, "Dr. Jones", "Dermatology", true)

	var ids []uint
	for _, name := range []string{"P1", "P2", "P3"} {
		m := &models.PatientDoctorMapping{PatientID: createPatient(t, s, a, name).ID, DoctorID: d.ID}
		_, err := s.AssignDoctor(ctx, m)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	counts, err := s.ActivePatientCounts(ctx, d.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[d.ID])
	assert.Equal(t, int64(0), counts[other.ID])

	require.NoError(t, s.DeactivateMapping(ctx, ids[0]))
	counts, err = s.ActivePatientCounts(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[d.ID])

	empty, err := s.ActivePatientCounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListActiveMappings_ScopedAndActiveOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	d := createDoctor(t, s, "Dr. Smith", "Cardiology", true)
	pa := createPatient(t, s, a, "Alice")
	pa2 := createPatient(t, s, a, "Ann")
	pb := createPatient(t, s, b, "Bob")

	keep := &models.PatientDoctorMapping{PatientID: pa.ID, DoctorID: d.ID}
	drop := &models.PatientDoctorMapping{PatientID: pa2.ID, DoctorID: d.ID}
	foreign := &models.PatientDoctorMapping{PatientID: pb.ID, DoctorID: d.ID}
	for _, m := range []*models.PatientDoctorMapping{keep, drop, foreign} {
		_, err := s.AssignDoctor(ctx, m)
		require.NoError(t, err)
	}
	require.NoError(t, s.DeactivateMapping(ctx, drop.ID))

	list, err := s.ListActiveMappings(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.Equal(t, "Alice", list[0].Patient.Name)
	assert.Equal(t, "Dr. Smith", list[0].Doctor.Name)

	forPatient, err := s.ActiveMappingsForPatient(ctx, pa2.ID)
	require.NoError(t, err)
	assert.Empty(t, forPatient)
}

func TestCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	p := createPatient(t, s, a, "Alice")
	d1 := createDoctor(t, s, "Dr. Smith", "Cardiology", true)
	d2 := createDoctor(t, s, "Dr. Jones", "Dermatology", true)

	m1 := &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: d1.ID}
	m2 := &models.PatientDoctorMapping{PatientID: p.ID, DoctorID: d2.ID}
	for _, m := range []*models.PatientDoctorMapping{m1, m2} {
		_, err := s.AssignDoctor(ctx, m)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteDoctor(ctx, d1.ID))
	_, err := s.MappingByID(ctx, m1.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.DeleteUser(ctx, a.ID))
	_, err = s.PatientByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.MappingByID(ctx, m2.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
