// Package cli implements the interactive command-line client for the
// storage backend.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/client/api"
	"github.com/dmitrijs2005/filekeeper/internal/client/config"
)

type App struct {
	config    *config.Config
	client    *api.Client
	userEmail string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.New(c.ServerBaseURL)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
