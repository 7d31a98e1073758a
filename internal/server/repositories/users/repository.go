// Package users declares the persistence contract for credential records.
package users

import (
	"context"

	"github.com/opennote-dev/opennote/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. A username or salt collision yields
	// common.ErrorAlreadyExists; the caller decides how to surface it.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
