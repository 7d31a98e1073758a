// Package notes declares the persistence contract for note rows.
package notes

import (
	"context"

	"github.com/opennote-dev/opennote/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}
