package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/policy"
	"github.com/harentsoaR/clinic-api/internal/serializers"
)

// ListPatients returns the caller's own patients.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.Store.ListPatients(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Patients(patients))
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req serializers.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	caller := middleware.UserID(c)
	patient := models.Patient{CreatedByID: caller}
	req.Apply(&patient)
	if !policy.Authorize(caller, &patient, policy.Create) {
		respondError(c, apperrors.ErrForbidden)
		return
	}
	if err := h.Store.CreatePatient(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializers.Patient(&patient))
}

// GetPatient only finds patients the caller owns.
func (h *Handler) GetPatient(c *gin.Context) {
	id, err := pathID(c, "Patient")
	if err != nil {
		respondError(c, err)
		return
	}
	patient, err := h.Store.PatientByID(c.Request.Context(), id)
	if err == nil && patient.CreatedByID != middleware.UserID(c) {
		err = apperrors.NotFound("Patient not found")
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Patient(patient))
}

// patientFor loads a patient and checks that the caller may perform op on it.
func (h *Handler) patientFor(c *gin.Context, op policy.Operation) (*models.Patient, error) {
	id, err := pathID(c, "Patient")
	if err != nil {
		return nil, err
	}
	patient, err := h.Store.PatientByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if !policy.Authorize(middleware.UserID(c), patient, op) {
		return nil, apperrors.ErrForbidden
	}
	return patient, nil
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	patient, err := h.patientFor(c, policy.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	var req serializers.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	req.Apply(patient)
	if err := h.Store.UpdatePatient(c.Request.Context(), patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Patient(patient))
}

func (h *Handler) PatchPatient(c *gin.Context) {
	patient, err := h.patientFor(c, policy.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	var req serializers.PatientPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	req.Apply(patient)
	if err := h.Store.UpdatePatient(c.Request.Context(), patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Patient(patient))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	patient, err := h.patientFor(c, policy.Delete)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeletePatient(c.Request.Context(), patient.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
