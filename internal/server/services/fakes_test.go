package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	filesrepo "github.com/dmitrijs2005/filekeeper/internal/server/repositories/files"
	notesrepo "github.com/dmitrijs2005/filekeeper/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/filekeeper/internal/server/repositories/users"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func noopLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fake users repository ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}

// --- fake files repository ---

type fakeFilesRepo struct {
	createPendingOut *models.File
	createPendingErr error

	commitErr  error
	commitURLs []string

	deleteErr error
	deleted   []string

	byIDOut *models.File
	byIDErr error

	listOut []*models.File
	listErr error
	onList  func(limit, offset int)

	incrementErr error
	incremented  []string

	countCommitted int64
	sumSize        int64
	sumDownloads   int64
	countRecent    int64
	aggErr         error

	staleOut []*models.File
	staleErr error
}

func (f *fakeFilesRepo) CreatePending(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createPendingErr != nil {
		return nil, f.createPendingErr
	}
	if f.createPendingOut != nil {
		return f.createPendingOut, nil
	}
	file.ID = "f-1"
	file.UploadStatus = models.UploadStatusPending
	file.CreatedAt = time.Now()
	return file, nil
}

func (f *fakeFilesRepo) Commit(ctx context.Context, id, url string) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commitURLs = append(f.commitURLs, url)
	return nil
}

func (f *fakeFilesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeFilesRepo) List(ctx context.Context, limit, offset int) ([]*models.File, error) {
	if f.onList != nil {
		f.onList(limit, offset)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeFilesRepo) ListAll(ctx context.Context) ([]*models.File, error) {
	return f.listOut, f.listErr
}

func (f *fakeFilesRepo) IncrementDownloadCount(ctx context.Context, id string) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented = append(f.incremented, id)
	return nil
}

func (f *fakeFilesRepo) CountCommitted(ctx context.Context) (int64, error) {
	return f.countCommitted, f.aggErr
}

func (f *fakeFilesRepo) SumSize(ctx context.Context) (int64, error) {
	return f.sumSize, f.aggErr
}

func (f *fakeFilesRepo) SumDownloads(ctx context.Context) (int64, error) {
	return f.sumDownloads, f.aggErr
}

func (f *fakeFilesRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return f.countRecent, f.aggErr
}

func (f *fakeFilesRepo) SelectStalePending(ctx context.Context, before time.Time) ([]*models.File, error) {
	if f.staleErr != nil {
		return nil, f.staleErr
	}
	return f.staleOut, nil
}

// --- fake notes repository ---

type fakeNotesRepo struct {
	createOut *models.Note
	createErr error

	listOut []*models.Note
	listErr error
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	n.ID = "n-1"
	n.CreatedAt = time.Now()
	return n, nil
}

func (f *fakeNotesRepo) List(ctx context.Context) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users *fakeUsersRepo
	files *fakeFilesRepo
	notes *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }
func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository { return m.files }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository { return m.notes }

// --- fake blob store ---

type fakeBlob struct {
	putURL string
	putErr error
	puts   []string

	deleteErr error
	deleted   []string
}

func (f *fakeBlob) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts = append(f.puts, key)
	if f.putURL != "" {
		return f.putURL, nil
	}
	return "https://cdn.test/" + key, nil
}

func (f *fakeBlob) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}
