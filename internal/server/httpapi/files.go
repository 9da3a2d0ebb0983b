package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/services"
)

func (s *Server) uploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "No file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error(c.Request().Context(), "failed to open multipart file", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Upload failed")
	}
	defer func() { _ = src.Close() }()

	file, err := s.uploads.Upload(c.Request().Context(), &services.UploadInput{
		Body:         src,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Title:        c.FormValue("title"),
		UserID:       c.FormValue("user_id"),
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return errorJSON(c, http.StatusBadRequest, "No file provided")
		}
		s.logger.Error(c.Request().Context(), "upload failed", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"file":    toFileResponse(file),
	})
}

func (s *Server) listFiles(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	files, err := s.catalog.List(c.Request().Context(), limit, offset)
	if err != nil {
		s.logger.Error(c.Request().Context(), "file listing failed", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch files")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"files":   toFileResponses(files),
	})
}

func (s *Server) deleteFile(c echo.Context) error {
	file, err := s.catalog.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(c.Request().Context(), "file deletion failed", "file_id", c.Param("id"), "error", err.Error())
		}
		return serviceError(c, err, "Failed to delete file")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"message":     "File deleted successfully",
		"deletedFile": toFileResponse(file),
	})
}

func (s *Server) downloadFile(c echo.Context) error {
	url, err := s.catalog.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(c.Request().Context(), "download failed", "file_id", c.Param("id"), "error", err.Error())
		}
		return serviceError(c, err, "Failed to download file")
	}

	return c.Redirect(http.StatusFound, url)
}
