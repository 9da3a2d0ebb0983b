package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/backup"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

func main() {

	cfg := config.LoadConfig()

	args := flagx.FilterArgs(os.Args[1:], []string{"-o"})
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	outDir := fs.String("o", "backup", "output directory for the JSON dump")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer func() { _ = db.Close() }()

	d := backup.NewDumper(db, repomanager.NewPostgresRepositoryManager(), logger)
	if err := d.Dump(ctx, *outDir); err != nil {
		log.Fatalf("backup failed: %v", err)
	}

	logger.Info(ctx, "backup complete", "dir", *outDir)
}
