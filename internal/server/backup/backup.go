// Package backup dumps the database tables as JSON files, one per table.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

type Dumper struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewDumper(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *Dumper {
	return &Dumper{db: db, repomanager: m, logger: l.With("module", "backup")}
}

// Dump writes users.json, files.json, and notes.json into outDir, creating
// the directory if needed. File contents include pending rows so a restore
// sees the same state the janitor would.
func (d *Dumper) Dump(ctx context.Context, outDir string) error {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("error creating output dir: %w", err)
	}

	users, err := d.repomanager.Users(d.db).List(ctx)
	if err != nil {
		return fmt.Errorf("error dumping users: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, "users.json"), users); err != nil {
		return err
	}
	d.logger.Info(ctx, "table dumped", "table", "users", "rows", len(users))

	files, err := d.repomanager.Files(d.db).ListAll(ctx)
	if err != nil {
		return fmt.Errorf("error dumping files: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, "files.json"), files); err != nil {
		return err
	}
	d.logger.Info(ctx, "table dumped", "table", "files", "rows", len(files))

	notes, err := d.repomanager.Notes(d.db).List(ctx)
	if err != nil {
		return fmt.Errorf("error dumping notes: %w", err)
	}
	if err := writeJSON(filepath.Join(outDir, "notes.json"), notes); err != nil {
		return err
	}
	d.logger.Info(ctx, "table dumped", "table", "notes", "rows", len(notes))

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
