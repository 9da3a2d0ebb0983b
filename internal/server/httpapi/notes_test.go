package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

func TestAddNote(t *testing.T) {
	t.Run("success returns inserted id", func(t *testing.T) {
		deps := newTestDeps()
		deps.notes.addOut = &models.Note{ID: "n-1", Title: "shopping", Content: "milk, eggs"}
		server := newTestServer(t, deps)

		body := `{"title":"shopping","content":"milk, eggs","user_id":"u-1"}`
		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "n-1", out["insertedId"])
	})

	t.Run("missing fields", func(t *testing.T) {
		deps := newTestDeps()
		deps.notes.addErr = common.ErrorValidation
		server := newTestServer(t, deps)

		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":""}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListNotes(t *testing.T) {
	deps := newTestDeps()
	deps.notes.listOut = []*models.Note{
		{ID: "n-2", Title: "newer", Content: "b", CreatedAt: time.Now()},
		{ID: "n-1", Title: "older", Content: "a", CreatedAt: time.Now().Add(-time.Hour)},
	}
	server := newTestServer(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	notes := out["notes"].([]any)
	require.Len(t, notes, 2)
	assert.Equal(t, "n-2", notes[0].(map[string]any)["id"])
	assert.Equal(t, "newer", notes[0].(map[string]any)["title"])
}
