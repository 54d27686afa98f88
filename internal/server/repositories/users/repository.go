// Package users declares the user directory contract and its SQL
// implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/authservice/internal/server/models"
)

// Repository looks up, creates and updates user records. An implementation
// is bound to one dbx.DBTX handle and keeps no transaction state itself.
type Repository interface {
	// Create inserts a new user. A duplicate email yields
	// common.ErrorAlreadyExists; uniqueness is enforced by the database.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail finds a user by exact email match, or returns
	// common.ErrorNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists the mutable fields of an existing user: password
	// hash, active flag and the login/activity timestamps.
	Update(ctx context.Context, user *models.User) error
}
