package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// CatalogService lists, deletes, and resolves downloads for stored files.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blob        blob.Store
	logger      logging.Logger
	maxPageSize int
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, b blob.Store, l logging.Logger, cfg *config.Config) *CatalogService {
	return &CatalogService{
		db:          db,
		repomanager: m,
		blob:        b,
		logger:      l.With("module", "catalog_service"),
		maxPageSize: cfg.MaxPageSize,
	}
}

// List returns committed files ordered by creation time descending.
// The page size is enforced server-side: limit is clamped to
// [1, MaxPageSize], with 0 meaning "one full page".
func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]*models.File, error) {
	if limit <= 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	repo := s.repomanager.Files(s.db)
	result, err := repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return result, nil
}

// Download counts one download of the file and returns the blob URL the
// caller should redirect to. Pending rows are invisible.
func (s *CatalogService) Download(ctx context.Context, id string) (string, error) {
	repo := s.repomanager.Files(s.db)

	file, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if file.UploadStatus != models.UploadStatusCommitted {
		return "", common.ErrorNotFound
	}

	if err := repo.IncrementDownloadCount(ctx, id); err != nil {
		return "", fmt.Errorf("error counting download: %w", err)
	}

	return file.URL, nil
}

// Delete removes the metadata row and best-effort deletes the blob. A
// failed blob deletion is logged, not surfaced: the metadata is already
// gone and the caller cannot act on the leak.
func (s *CatalogService) Delete(ctx context.Context, id string) (*models.File, error) {
	repo := s.repomanager.Files(s.db)

	file, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error deleting file: %w", err)
	}

	if file.StorageKey != "" {
		if err := s.blob.Delete(ctx, file.StorageKey); err != nil {
			s.logger.Warn(ctx, "blob deletion failed, object leaked", "storage_key", file.StorageKey, "error", err.Error())
		}
	}

	return file, nil
}
