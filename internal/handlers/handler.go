package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// Handler carries what every endpoint needs: the query layer, the token
// issuer and the assignment audit trail.
type Handler struct {
	Store  *store.Store
	Tokens *utils.TokenIssuer
	Audit  services.AuditRecorder
}

func NewHandler(st *store.Store, tokens *utils.TokenIssuer, audit services.AuditRecorder) *Handler {
	if audit == nil {
		audit = services.NopAuditRecorder{}
	}
	return &Handler{
		Store:  st,
		Tokens: tokens,
		Audit:  audit,
	}
}

// RegisterRoutes mounts the public and the authenticated endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/token/refresh", h.RefreshToken)

	api := r.Group("")
	api.Use(middleware.AuthMiddleware(h.Tokens, h.Store))
	{
		api.GET("/patients", h.ListPatients)
		api.POST("/patients", h.CreatePatient)
		api.GET("/patients/:id", h.GetPatient)
		api.PUT("/patients/:id", h.UpdatePatient)
		api.PATCH("/patients/:id", h.PatchPatient)
		api.DELETE("/patients/:id", h.DeletePatient)

		api.GET("/doctors", h.ListDoctors)
		api.POST("/doctors", h.CreateDoctor)
		api.GET("/doctors/:id", h.GetDoctor)
		api.PUT("/doctors/:id", h.UpdateDoctor)
		api.PATCH("/doctors/:id", h.PatchDoctor)
		api.DELETE("/doctors/:id", h.DeleteDoctor)

		api.GET("/mappings", h.ListMappings)
		api.POST("/mappings", h.CreateMapping)
		api.GET("/mappings/:id", h.GetPatientAssignments)
		api.PATCH("/mappings/:id", h.PatchMapping)
		api.DELETE("/mappings/:id", h.DeleteMapping)
	}
}
