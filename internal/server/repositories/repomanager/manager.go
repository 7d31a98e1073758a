package repomanager

import (
	"context"
	"database/sql"

	"github.com/opennote-dev/opennote/internal/dbx"
	"github.com/opennote-dev/opennote/internal/server/repositories/notes"
	"github.com/opennote-dev/opennote/internal/server/repositories/refreshtokens"
	"github.com/opennote-dev/opennote/internal/server/repositories/users"
)

// RepositoryManager vends backend-specific repository implementations and
// exposes a schema migration hook. Repositories are bound to a dbx.DBTX so
// services can run them either on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
}
