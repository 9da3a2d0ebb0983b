package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// Janitor reclaims uploads that never reached the committed state: rows
// stuck in 'pending' past the grace period are removed together with any
// blob that made it to object storage before the failure.
type Janitor struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blob        blob.Store
	logger      logging.Logger
	gracePeriod time.Duration
	interval    time.Duration
}

func NewJanitor(db *sql.DB, m repomanager.RepositoryManager, b blob.Store, l logging.Logger, cfg *config.Config) *Janitor {
	return &Janitor{
		db:          db,
		repomanager: m,
		blob:        b,
		logger:      l.With("module", "janitor"),
		gracePeriod: cfg.JanitorGracePeriod,
		interval:    cfg.JanitorInterval,
	}
}

// Run sweeps periodically until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.Sweep(ctx); err != nil {
				j.logger.Error(ctx, "sweep failed", "error", err.Error())
			}
		case <-ctx.Done():
			return
		}
	}
}

// Sweep performs one reclamation pass. Blob deletions are best-effort: a
// missing object is fine, and a failed deletion leaves the row in place so
// the next pass retries.
func (j *Janitor) Sweep(ctx context.Context) error {
	repo := j.repomanager.Files(j.db)

	stale, err := repo.SelectStalePending(ctx, time.Now().Add(-j.gracePeriod))
	if err != nil {
		return err
	}

	for _, f := range stale {
		if f.StorageKey != "" {
			if err := j.blob.Delete(ctx, f.StorageKey); err != nil {
				j.logger.Warn(ctx, "stale blob deletion failed, will retry", "file_id", f.ID, "error", err.Error())
				continue
			}
		}
		if err := repo.Delete(ctx, f.ID); err != nil {
			j.logger.Error(ctx, "stale row deletion failed", "file_id", f.ID, "error", err.Error())
			continue
		}
		j.logger.Info(ctx, "reclaimed stale pending upload", "file_id", f.ID, "storage_key", f.StorageKey)
	}

	return nil
}
