package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]any{"success": false, "error": msg})
}

// serviceError maps service sentinel errors onto HTTP error responses.
// Unknown errors become opaque 500s; the detail stays in the server log.
func serviceError(c echo.Context, err error, internalMsg string) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return errorJSON(c, http.StatusNotFound, "File not found")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return errorJSON(c, http.StatusUnauthorized, "Not authenticated")
	default:
		return errorJSON(c, http.StatusInternalServerError, internalMsg)
	}
}

type fileResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OriginalName  string    `json:"original_name"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mime_type"`
	URL           string    `json:"url"`
	Provider      string    `json:"provider"`
	UserID        string    `json:"user_id,omitempty"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func toFileResponse(f *models.File) *fileResponse {
	return &fileResponse{
		ID:            f.ID,
		Title:         f.Title,
		OriginalName:  f.OriginalName,
		Size:          f.Size,
		MimeType:      f.MimeType,
		URL:           f.URL,
		Provider:      f.Provider,
		UserID:        f.UserID,
		DownloadCount: f.DownloadCount,
		CreatedAt:     f.CreatedAt,
	}
}

func toFileResponses(files []*models.File) []*fileResponse {
	out := make([]*fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	return out
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toNoteResponses(notes []*models.Note) []*noteResponse {
	out := make([]*noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, &noteResponse{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			UserID:    n.UserID,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
