package httpapi

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/config"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
)

type fakeUsers struct {
	registerOut *models.User
	registerErr error

	loginToken string
	loginErr   error

	currentOut *models.User
	currentErr error

	lastToken string
}

func (f *fakeUsers) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeUsers) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	f.lastToken = token
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.currentOut, nil
}

type fakeUploader struct {
	out     *models.File
	err     error
	lastIn  *services.UploadInput
	payload []byte
}

func (f *fakeUploader) Upload(ctx context.Context, in *services.UploadInput) (*models.File, error) {
	f.lastIn = in
	if in != nil && in.Body != nil {
		f.payload, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeCatalog struct {
	listOut []*models.File
	listErr error

	downloadURL string
	downloadErr error

	deleteOut *models.File
	deleteErr error

	lastLimit  int
	lastOffset int
	lastID     string
}

func (f *fakeCatalog) List(ctx context.Context, limit, offset int) ([]*models.File, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeCatalog) Download(ctx context.Context, id string) (string, error) {
	f.lastID = id
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return f.downloadURL, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) (*models.File, error) {
	f.lastID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteOut, nil
}

type fakeStats struct {
	out *services.Stats
	err error
}

func (f *fakeStats) Compute(ctx context.Context) (*services.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeNotes struct {
	addOut *models.Note
	addErr error

	listOut []*models.Note
	listErr error
}

func (f *fakeNotes) Add(ctx context.Context, title, content, userID string) (*models.Note, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.addOut, nil
}

func (f *fakeNotes) List(ctx context.Context) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type testDeps struct {
	users   *fakeUsers
	uploads *fakeUploader
	catalog *fakeCatalog
	stats   *fakeStats
	notes   *fakeNotes
}

func newTestDeps() *testDeps {
	return &testDeps{
		users:   &fakeUsers{},
		uploads: &fakeUploader{},
		catalog: &fakeCatalog{},
		stats:   &fakeStats{},
		notes:   &fakeNotes{},
	}
}

func newTestServer(t *testing.T, d *testDeps) *Server {
	t.Helper()
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg := &config.Config{SessionValidityDuration: 7 * 24 * time.Hour}
	return NewServer(d.users, d.uploads, d.catalog, d.stats, d.notes, l, cfg)
}
