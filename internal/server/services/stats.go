package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/bytefmt"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// Stats holds the aggregate usage counters. TotalSize is pre-formatted for
// display ("1.5 MB"); TotalSizeBytes carries the raw value.
type Stats struct {
	TotalFiles     int64
	TotalSize      string
	TotalSizeBytes int64
	TotalDownloads int64
	RecentUploads  int64
}

// recentWindow is the trailing window counted as "recent uploads".
const recentWindow = 24 * time.Hour

// StatsService computes aggregate usage statistics.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

// Compute runs the four aggregate reads inside one read-only
// repeatable-read transaction, so all counters reflect a single snapshot
// even while uploads and downloads are in flight.
func (s *StatsService) Compute(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		var err error
		if stats.TotalFiles, err = repo.CountCommitted(ctx); err != nil {
			return err
		}
		if stats.TotalSizeBytes, err = repo.SumSize(ctx); err != nil {
			return err
		}
		if stats.TotalDownloads, err = repo.SumDownloads(ctx); err != nil {
			return err
		}
		stats.RecentUploads, err = repo.CountCreatedSince(ctx, time.Now().Add(-recentWindow))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	stats.TotalSize = bytefmt.Format(stats.TotalSizeBytes)
	return stats, nil
}
