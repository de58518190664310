package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/policy"
	"github.com/harentsoaR/clinic-api/internal/serializers"
	"github.com/harentsoaR/clinic-api/internal/store"
)

// ListDoctors supports ?specialization= (substring, any case) and
// ?available= ("true" in any case means available, any other value not).
func (h *Handler) ListDoctors(c *gin.Context) {
	filter := store.DoctorFilter{Specialization: c.Query("specialization")}
	if available := c.Query("available"); available != "" {
		v := strings.EqualFold(available, "true")
		filter.Available = &v
	}

	doctors, err := h.Store.ListDoctors(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := serializers.Doctors(c.Request.Context(), h.Store, doctors...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req serializers.DoctorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	var doctor models.Doctor
	req.Apply(&doctor)
	if !policy.Authorize(middleware.UserID(c), &doctor, policy.Create) {
		respondError(c, apperrors.ErrForbidden)
		return
	}
	if err := h.Store.CreateDoctor(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	h.renderDoctor(c, http.StatusCreated, &doctor)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.doctorFor(c, policy.Read)
	if err != nil {
		respondError(c, err)
		return
	}
	h.renderDoctor(c, http.StatusOK, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	doctor, err := h.doctorFor(c, policy.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	var req serializers.DoctorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	req.Apply(doctor)
	if err := h.Store.UpdateDoctor(c.Request.Context(), doctor); err != nil {
		respondError(c, err)
		return
	}
	h.renderDoctor(c, http.StatusOK, doctor)
}

func (h *Handler) PatchDoctor(c *gin.Context) {
	doctor, err := h.doctorFor(c, policy.Update)
	if err != nil {
		respondError(c, err)
		return
	}
	var req serializers.DoctorPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	req.Apply(doctor)
	if err := h.Store.UpdateDoctor(c.Request.Context(), doctor); err != nil {
		respondError(c, err)
		return
	}
	h.renderDoctor(c, http.StatusOK, doctor)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	doctor, err := h.doctorFor(c, policy.Delete)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeleteDoctor(c.Request.Context(), doctor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) doctorFor(c *gin.Context, op policy.Operation) (*models.Doctor, error) {
	id, err := pathID(c, "Doctor")
	if err != nil {
		return nil, err
	}
	doctor, err := h.Store.DoctorByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if !policy.Authorize(middleware.UserID(c), doctor, op) {
		return nil, apperrors.ErrForbidden
	}
	return doctor, nil
}

func (h *Handler) renderDoctor(c *gin.Context, status int, doctor *models.Doctor) {
	view, err := serializers.Doctor(c.Request.Context(), h.Store, doctor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, view)
}
