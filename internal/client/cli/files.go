package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/bytefmt"
)

const listPageSize = 50

func (a *App) upload(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: upload <path> [title]")
		return
	}

	path := args[0]
	title := ""
	if len(args) > 1 {
		title = args[1]
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer func() { _ = f.Close() }()

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	file, err := a.client.Upload(ctx, filepath.Base(path), title, mimeType, f)
	if err != nil {
		log.Printf("Upload unsuccessfull: %s", err.Error())
		return
	}

	fmt.Printf("Uploaded %s (%s) id=%s\n", file.Title, bytefmt.Format(file.Size), file.ID)
}

func (a *App) list(ctx context.Context) {
	files, err := a.client.ListFiles(ctx, listPageSize, 0)
	if err != nil {
		log.Println(err.Error())
		return
	}

	if len(files) == 0 {
		fmt.Println("No files stored yet")
		return
	}

	for _, f := range files {
		fmt.Printf("%s  %-30s %10s  downloads: %d\n", f.ID, f.Title, bytefmt.Format(f.Size), f.DownloadCount)
	}
}

func (a *App) stats(ctx context.Context) {
	s, err := a.client.Stats(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("Files: %d\nTotal size: %s\nDownloads: %d\nUploads in the last 24h: %d\n",
		s.TotalFiles, s.TotalSize, s.TotalDownloads, s.RecentUploads)
}
