package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/dbx"
	"github.com/opennote-dev/opennote/internal/server/auth"
	"github.com/opennote-dev/opennote/internal/server/models"
	"github.com/opennote-dev/opennote/internal/server/repositories/repomanager"
	"github.com/opennote-dev/opennote/internal/timex"
)

// IssuedToken is a freshly minted access token in wire form, plus its
// expiry so the transport can mirror it into the cookie attributes.
type IssuedToken struct {
	Value    string
	ExpireAt int64
}

// UserService implements registration, login, token rotation and logout.
// All token state changes run inside a single transaction so that a failed
// mint never leaves a stray refresh row behind.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	refreshTTL  time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, refreshTTL time.Duration) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		codec:       codec,
		refreshTTL:  refreshTTL,
	}
}

// Register creates a user with a fresh salt. Empty credentials and taken
// usernames are rejected before touching the hash.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	salt := auth.NewSalt()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Password:     auth.HashPassword(password, salt),
		PasswordSalt: salt,
	}

	user, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			// lost a registration race after the pre-check
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and mints a token lineage. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*IssuedToken, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordSalt, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	var issued *IssuedToken
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		issued, err = s.issueToken(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, common.ErrorInternal
	}

	return issued, nil
}

// Refresh rotates the refresh row referenced by the presented token and
// mints a replacement access token. The old row is deactivated with a
// guarded update, so of two concurrent refreshes exactly one wins.
func (s *UserService) Refresh(ctx context.Context, token *auth.Token) (*IssuedToken, error) {
	var issued *IssuedToken

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.RefreshTokens(tx)

		row, err := repo.Find(ctx, token.RefreshTokenID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}

		if !row.Active || timex.UnixNow() > row.ExpireAt {
			return common.ErrRefreshTokenExpired
		}

		if err := repo.Deactivate(ctx, row.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// another refresh spent this row first
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error deactivating refresh token: %w", err)
		}

		issued, err = s.issueToken(ctx, tx, row.UserID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return issued, nil
}

// Logout deactivates the refresh row referenced by the presented token,
// ending the lineage. A token whose row is already gone is treated as not
// authorized rather than as a no-op.
func (s *UserService) Logout(ctx context.Context, token *auth.Token) error {
	repo := s.repomanager.RefreshTokens(s.db)

	if err := repo.Deactivate(ctx, token.RefreshTokenID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	return nil
}

// Whoami resolves the authenticated token back to its user record.
func (s *UserService) Whoami(ctx context.Context, token *auth.Token) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// issueToken inserts a fresh refresh row and mints an access token
// referencing it. Runs on whatever DBTX the caller provides, typically a
// transaction shared with the rotation that preceded it.
func (s *UserService) issueToken(ctx context.Context, tx dbx.DBTX, userID string) (*IssuedToken, error) {
	now := time.Now()

	row := &models.RefreshToken{
		ID:       uuid.NewString(),
		UserID:   userID,
		ExpireAt: now.Unix() + int64(s.refreshTTL/time.Second),
		Active:   true,
	}

	if err := s.repomanager.RefreshTokens(tx).Create(ctx, row); err != nil {
		return nil, fmt.Errorf("error creating refresh token: %w", err)
	}

	token := s.codec.Create(now, userID, row.ID)
	return &IssuedToken{Value: s.codec.Serialize(token), ExpireAt: token.ExpireAt}, nil
}
