package files

import (
	"context"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

type Repository interface {
	// CreatePending inserts a metadata row in the 'pending' state, before
	// any bytes reach object storage.
	CreatePending(ctx context.Context, file *models.File) (*models.File, error)
	// Commit marks a pending row as committed and records the durable URL.
	Commit(ctx context.Context, id, url string) error
	// Delete removes a row regardless of its state.
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*models.File, error)
	List(ctx context.Context, limit, offset int) ([]*models.File, error)
	// ListAll returns every row regardless of state, for backup dumps.
	ListAll(ctx context.Context) ([]*models.File, error)
	IncrementDownloadCount(ctx context.Context, id string) error

	// Stats aggregates over committed rows. Callers that need a single
	// consistent snapshot should run these inside one transaction.
	CountCommitted(ctx context.Context) (int64, error)
	SumSize(ctx context.Context) (int64, error)
	SumDownloads(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	// SelectStalePending returns pending rows created before the cutoff,
	// i.e. uploads that never reached the committed state.
	SelectStalePending(ctx context.Context, before time.Time) ([]*models.File, error)
}
