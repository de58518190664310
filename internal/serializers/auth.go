package serializers

import (
	"context"
	"errors"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

const (
	MsgPasswordsDontMatch = "Passwords don't match"
	MsgInvalidCredentials = "Invalid credentials"
	MsgAccountDisabled    = "User account is disabled"
	MsgMissingCredentials = "Must provide username and password"
	MsgPasswordTooLong    = "password: Ensure this field has no more than 72 bytes."
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=150"`
	Email           string `json:"email" binding:"omitempty,email,max=254"`
	FirstName       string `json:"first_name" binding:"max=150"`
	LastName        string `json:"last_name" binding:"max=150"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// Validate runs the cross-field checks binding tags cannot express.
func (r *RegisterRequest) Validate() error {
	if r.Password != r.PasswordConfirm {
		return apperrors.Validation(MsgPasswordsDontMatch)
	}
	return nil
}

// User builds the account to persist. The password is hashed here and
// password_confirm is dropped.
func (r *RegisterRequest) User() (*models.User, error) {
	hash, err := utils.HashPassword(r.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperrors.Validation(MsgPasswordTooLong)
	}
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  hash,
		IsActive:  true,
	}, nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserFinder is the slice of the store login needs.
type UserFinder interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticate checks the credentials and then the account state, so a
// disabled account with the right password is reported as disabled.
func (r *LoginRequest) Authenticate(ctx context.Context, users UserFinder) (*models.User, error) {
	if r.Username == "" || r.Password == "" {
		return nil, apperrors.Validation(MsgMissingCredentials)
	}
	user, err := users.UserByUsername(ctx, r.Username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Validation(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(r.Password, user.Password) {
		return nil, apperrors.Validation(MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.Validation(MsgAccountDisabled)
	}
	return user, nil
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// UserSummary is the public part of an account.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func User(u *models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string          `json:"message"`
	User    UserSummary     `json:"user"`
	Tokens  utils.TokenPair `json:"tokens"`
}
