package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UploadInput carries one multipart upload through the service.
type UploadInput struct {
	Body         io.Reader
	OriginalName string
	MimeType     string
	Size         int64
	Title        string
	UserID       string
}

// UploadService moves uploaded bytes into object storage and records file
// metadata. The metadata row is written first in the 'pending' state and
// committed only after the blob is durably stored, so a crash or storage
// failure never leaves a committed row without a blob; stale pending rows
// are reclaimed by the Janitor.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blob        blob.Store
	logger      logging.Logger
}

func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, b blob.Store, l logging.Logger) *UploadService {
	return &UploadService{db: db, repomanager: m, blob: b, logger: l.With("module", "upload_service")}
}

// newStorageKey returns a date-sharded object key for a fresh upload.
func newStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}

// Upload stores the file payload and returns the committed descriptor.
func (s *UploadService) Upload(ctx context.Context, in *UploadInput) (*models.File, error) {
	if in == nil || in.Body == nil || in.OriginalName == "" {
		return nil, common.ErrorValidation
	}

	title := in.Title
	if title == "" {
		title = in.OriginalName
	}

	repo := s.repomanager.Files(s.db)

	file, err := repo.CreatePending(ctx, &models.File{
		Title:        title,
		OriginalName: in.OriginalName,
		Size:         in.Size,
		MimeType:     in.MimeType,
		Provider:     blob.ProviderName,
		UserID:       in.UserID,
		StorageKey:   newStorageKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("error recording upload: %w", err)
	}

	url, err := s.blob.Put(ctx, file.StorageKey, in.Body, in.MimeType)
	if err != nil {
		// Nothing reached object storage; remove the placeholder row so the
		// failed upload is invisible to callers.
		if delErr := repo.Delete(ctx, file.ID); delErr != nil {
			s.logger.Error(ctx, "failed to remove pending row after blob error", "file_id", file.ID, "error", delErr.Error())
		}
		return nil, fmt.Errorf("error uploading to blob store: %w", err)
	}

	if err := repo.Commit(ctx, file.ID, url); err != nil {
		// The blob exists but the row is still pending; the janitor will
		// reclaim both after the grace period.
		return nil, fmt.Errorf("error committing upload: %w", err)
	}

	file.URL = url
	file.UploadStatus = models.UploadStatusCommitted
	return file, nil
}
