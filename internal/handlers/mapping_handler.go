package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/policy"
	"github.com/harentsoaR/clinic-api/internal/serializers"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
)

// ListMappings returns the active assignments of the caller's patients.
func (h *Handler) ListMappings(c *gin.Context) {
	mappings, err := h.Store.ListActiveMappings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Mappings(mappings))
}

func (h *Handler) CreateMapping(c *gin.Context) {
	var req serializers.MappingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	ctx := c.Request.Context()
	mapping, err := req.ValidateAssignment(ctx, h.Store, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// The pre-check above can race; the unique pair index decides.
	reactivated, err := h.Store.AssignDoctor(ctx, mapping)
	if errors.Is(err, store.ErrDuplicateMapping) {
		err = apperrors.Validation(serializers.MsgAlreadyAssigned)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	action := services.ActionAssigned
	if reactivated {
		action = services.ActionReactivated
	}
	h.recordAssignment(c, action, mapping)
	c.JSON(http.StatusCreated, serializers.Mapping(mapping))
}

// GetPatientAssignments takes a patient id, not a mapping id, and returns
// that patient with its active doctors.
func (h *Handler) GetPatientAssignments(c *gin.Context) {
	id, err := pathID(c, "Patient")
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	patient, err := h.Store.PatientByID(ctx, id)
	if err == nil && patient.CreatedByID != middleware.UserID(c) {
		err = apperrors.NotFound("Patient not found")
	}
	if err != nil {
		respondError(c, err)
		return
	}

	mappings, err := h.Store.ActiveMappingsForPatient(ctx, patient.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := serializers.PatientAssignments(ctx, h.Store, patient, mappings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PatchMapping edits the notes of an assignment.
func (h *Handler) PatchMapping(c *gin.Context) {
	mapping, err := h.mappingFor(c, policy.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	var req serializers.MappingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	if err := h.Store.UpdateMappingNotes(c.Request.Context(), mapping.ID, *req.Notes); err != nil {
		respondError(c, err)
		return
	}
	mapping.Notes = *req.Notes
	h.recordAssignment(c, services.ActionNotesEdited, mapping)
	c.JSON(http.StatusOK, serializers.Mapping(mapping))
}

// DeleteMapping soft-deletes: the row stays with is_active=false.
func (h *Handler) DeleteMapping(c *gin.Context) {
	mapping, err := h.mappingFor(c, policy.Delete)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeactivateMapping(c.Request.Context(), mapping.ID); err != nil {
		respondError(c, err)
		return
	}
	mapping.IsActive = false
	h.recordAssignment(c, services.ActionUnassigned, mapping)
	c.JSON(http.StatusOK, gin.H{"message": "Doctor successfully removed from patient"})
}

// mappingFor loads a mapping the caller may act on. A mapping of someone
// else's patient is reported exactly like a missing one.
func (h *Handler) mappingFor(c *gin.Context, op policy.Operation) (*models.PatientDoctorMapping, error) {
	id, err := pathID(c, "Mapping")
	if err != nil {
		return nil, err
	}
	mapping, err := h.Store.MappingByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if !policy.Authorize(middleware.UserID(c), mapping, op) {
		return nil, apperrors.NotFound("Mapping not found")
	}
	return mapping, nil
}

// recordAssignment appends to the audit trail. Failures are logged only.
func (h *Handler) recordAssignment(c *gin.Context, action string, m *models.PatientDoctorMapping) {
	ev := services.AssignmentEvent{
		Action:    action,
		MappingID: m.ID,
		PatientID: m.PatientID,
		DoctorID:  m.DoctorID,
		UserID:    middleware.UserID(c),
	}
	if err := h.Audit.Record(c.Request.Context(), ev); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).
			Str("action", action).
			Uint("mapping_id", m.ID).
			Msg("failed to record assignment event")
	}
}
