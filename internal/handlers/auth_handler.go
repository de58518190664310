package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/database"
	"github.com/harentsoaR/clinic-api/internal/serializers"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// Register creates an account and returns it with a fresh token pair.
func (h *Handler) Register(c *gin.Context) {
	var req serializers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	user, err := req.User()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.Tokens.IssuePair(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializers.AuthResponse{
		Message: "User registered successfully",
		User:    serializers.User(user),
		Tokens:  tokens,
	})
}

// Login verifies credentials and issues a new token pair.
func (h *Handler) Login(c *gin.Context) {
	var req serializers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	user, err := req.Authenticate(c.Request.Context(), h.Store)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.Tokens.IssuePair(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.AuthResponse{
		Message: "Login successful",
		User:    serializers.User(user),
		Tokens:  tokens,
	})
}

// RefreshToken exchanges a refresh token for a new access token.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req serializers.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serializers.BindingError(err))
		return
	}

	claims, err := h.Tokens.Validate(req.Refresh, utils.RefreshToken)
	if err != nil {
		respondError(c, apperrors.Authentication("Token is invalid or expired"))
		return
	}
	user, err := h.Store.UserByID(c.Request.Context(), claims.UserID)
	if errors.Is(err, apperrors.ErrNotFound) || (err == nil && !user.IsActive) {
		respondError(c, apperrors.Authentication("User not found or inactive"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	access, err := h.Tokens.IssueAccess(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	if err := database.Ping(h.Store.DB()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
