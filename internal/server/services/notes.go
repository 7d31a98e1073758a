package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/server/models"
	"github.com/opennote-dev/opennote/internal/server/repositories/repomanager"
)

const maxNoteNameLength = 50

// NoteService implements plain CRUD over notes.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

func validateNote(note *models.Note) error {
	if note.Name == "" || len(note.Name) > maxNoteNameLength {
		return common.ErrValidation
	}
	return nil
}

func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	result, err := s.repomanager.Notes(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

func (s *NoteService) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if err := validateNote(note); err != nil {
		return nil, err
	}
	note.ID = uuid.NewString()
	return s.repomanager.Notes(s.db).Create(ctx, note)
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).GetByID(ctx, id)
}

func (s *NoteService) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	if err := validateNote(note); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Update(ctx, note)
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, id)
}
