package notes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (title, content, user_id)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.UserID).Scan(&note.ID, &note.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Note, error) {

	query :=
		`SELECT id, title, content, COALESCE(user_id, ''), created_at
		 FROM notes
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		item := &models.Note{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.UserID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
