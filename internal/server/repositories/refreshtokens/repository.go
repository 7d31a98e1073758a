// Package refreshtokens declares the persistence contract for the revocable
// half of a login lineage.
package refreshtokens

import (
	"context"

	"github.com/opennote-dev/opennote/internal/server/models"
)

type Repository interface {
	// Create persists token as a new row. The caller supplies the id and
	// expiry; rows always start active.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find returns the row with the given id, or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.RefreshToken, error)

	// Deactivate marks an active row inactive. When no active row with the
	// id exists it returns common.ErrorNotFound — this is how the loser of
	// a concurrent rotation race observes that the row was already spent.
	Deactivate(ctx context.Context, id string) error
}
