package user

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	RoleStaff   = "staff"
	RolePatient = "patient"
)

var (
	ErrUserNotFound = httperr.ErrBusiness("user_not_found")
	ErrEmailTaken   = httperr.ErrBusiness("email_already_exists")
	ErrInvalidRole  = httperr.ErrBusiness("invalid_role")
)

func ValidRole(role string) bool {
	return role == RoleStaff || role == RolePatient
}

type Repository interface {
	// CreateUser returns ErrEmailTaken for a duplicate email.
	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)
}
