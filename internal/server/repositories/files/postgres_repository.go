package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreatePending(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (title, original_name, size, mime_type, provider, user_id, storage_key, upload_status)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, 'pending')
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.Title, file.OriginalName, file.Size, file.MimeType, file.Provider, file.UserID, file.StorageKey).
		Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	file.UploadStatus = models.UploadStatusPending
	return file, nil
}

func (r *PostgresRepository) Commit(ctx context.Context, id, url string) error {

	query := `UPDATE files SET url = $2, upload_status = 'committed' WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {

	query :=
		`SELECT id, COALESCE(title, ''), original_name, size, COALESCE(mime_type, ''), COALESCE(url, ''),
		        provider, COALESCE(user_id, ''), COALESCE(storage_key, ''), upload_status,
		        COALESCE(download_count, 0), created_at
		 FROM files
		 WHERE id = $1
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.Title, &file.OriginalName, &file.Size, &file.MimeType, &file.URL,
		&file.Provider, &file.UserID, &file.StorageKey, &file.UploadStatus,
		&file.DownloadCount, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.File, error) {

	query :=
		`SELECT id, COALESCE(title, ''), original_name, size, COALESCE(mime_type, ''), COALESCE(url, ''),
		        provider, COALESCE(user_id, ''), COALESCE(storage_key, ''), upload_status,
		        COALESCE(download_count, 0), created_at
		 FROM files
		 WHERE upload_status = 'committed'
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item := &models.File{}
		err := rows.Scan(
			&item.ID, &item.Title, &item.OriginalName, &item.Size, &item.MimeType, &item.URL,
			&item.Provider, &item.UserID, &item.StorageKey, &item.UploadStatus,
			&item.DownloadCount, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.File, error) {

	query :=
		`SELECT id, COALESCE(title, ''), original_name, size, COALESCE(mime_type, ''), COALESCE(url, ''),
		        provider, COALESCE(user_id, ''), COALESCE(storage_key, ''), upload_status,
		        COALESCE(download_count, 0), created_at
		 FROM files
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item := &models.File{}
		err := rows.Scan(
			&item.ID, &item.Title, &item.OriginalName, &item.Size, &item.MimeType, &item.URL,
			&item.Provider, &item.UserID, &item.StorageKey, &item.UploadStatus,
			&item.DownloadCount, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) IncrementDownloadCount(ctx context.Context, id string) error {

	query := `UPDATE files SET download_count = COALESCE(download_count, 0) + 1 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) CountCommitted(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM files WHERE upload_status = 'committed'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SumSize(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(size), 0) FROM files WHERE upload_status = 'committed'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SumDownloads(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(download_count), 0) FROM files WHERE upload_status = 'committed'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM files WHERE upload_status = 'committed' AND created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SelectStalePending(ctx context.Context, before time.Time) ([]*models.File, error) {

	query :=
		`SELECT id, COALESCE(storage_key, ''), provider
		 FROM files
		 WHERE upload_status = 'pending' AND created_at < $1
		 `

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item := &models.File{UploadStatus: models.UploadStatusPending}
		if err := rows.Scan(&item.ID, &item.StorageKey, &item.Provider); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
