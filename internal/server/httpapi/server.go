// Package httpapi exposes the service layer over HTTP using echo. Route
// handlers translate service sentinel errors into JSON error responses of
// the form {"success": false, "error": "..."}.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
)

// UserProvider is the slice of UserService the HTTP layer needs.
type UserProvider interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Uploader accepts multipart payloads for storage.
type Uploader interface {
	Upload(ctx context.Context, in *services.UploadInput) (*models.File, error)
}

// Cataloger lists, deletes, and resolves downloads.
type Cataloger interface {
	List(ctx context.Context, limit, offset int) ([]*models.File, error)
	Download(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) (*models.File, error)
}

// StatsProvider computes aggregate usage counters.
type StatsProvider interface {
	Compute(ctx context.Context) (*services.Stats, error)
}

// NoteProvider stores and lists notes.
type NoteProvider interface {
	Add(ctx context.Context, title, content, userID string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
}

// Server wires the services into an echo instance.
type Server struct {
	echo            *echo.Echo
	users           UserProvider
	uploads         Uploader
	catalog         Cataloger
	stats           StatsProvider
	notes           NoteProvider
	logger          logging.Logger
	sessionValidity time.Duration
}

func NewServer(users UserProvider, uploads Uploader, catalog Cataloger, stats StatsProvider, notes NoteProvider, l logging.Logger, cfg *config.Config) *Server {
	s := &Server{
		echo:            echo.New(),
		users:           users,
		uploads:         uploads,
		catalog:         catalog,
		stats:           stats,
		notes:           notes,
		logger:          l.With("module", "httpapi"),
		sessionValidity: cfg.SessionValidityDuration,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())

	s.echo.GET("/ping", s.ping)

	s.echo.POST("/auth/register", s.register)
	s.echo.POST("/auth/login", s.login)
	s.echo.POST("/auth/logout", s.logout)
	s.echo.GET("/auth/me", s.me)

	s.echo.POST("/upload", s.uploadFile)
	s.echo.GET("/files", s.listFiles)
	s.echo.DELETE("/files/:id", s.deleteFile)
	s.echo.GET("/download/:id", s.downloadFile)

	s.echo.GET("/stats", s.getStats)

	s.echo.POST("/notes", s.addNote)
	s.echo.GET("/notes", s.listNotes)
}

// Start runs the server until it fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ping(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
