package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// NoteService stores and lists short text notes.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Add inserts a note and returns it with the assigned id.
func (s *NoteService) Add(ctx context.Context, title, content, userID string) (*models.Note, error) {
	if title == "" || content == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Notes(s.db)
	note, err := repo.Create(ctx, &models.Note{Title: title, Content: content, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// List returns all notes ordered by creation time descending.
func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}
