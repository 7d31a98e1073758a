package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/dbx"
	"github.com/opennote-dev/opennote/internal/server/models"
)

// SQLiteRepository mirrors PostgresRepository for the embedded sqlite
// backend used in development and tests.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, expire_at, active)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.ExpireAt, token.Active); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, id string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, expire_at, active FROM refresh_tokens
		WHERE id = ?
	`
	token := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&token.ID, &token.UserID, &token.ExpireAt, &token.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *SQLiteRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE refresh_tokens SET active = FALSE
		WHERE id = ? AND active
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
