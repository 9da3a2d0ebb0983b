package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

func (s *Server) addNote(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Title and content are required")
	}

	note, err := s.notes.Add(c.Request().Context(), req.Title, req.Content, req.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return errorJSON(c, http.StatusBadRequest, "Title and content are required")
		}
		s.logger.Error(c.Request().Context(), "note creation failed", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Failed to create note")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"insertedId": note.ID,
	})
}

func (s *Server) listNotes(c echo.Context) error {
	notes, err := s.notes.List(c.Request().Context())
	if err != nil {
		s.logger.Error(c.Request().Context(), "note listing failed", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch notes")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"notes":   toNoteResponses(notes),
	})
}
