package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) getStats(c echo.Context) error {
	stats, err := s.stats.Compute(c.Request().Context())
	if err != nil {
		s.logger.Error(c.Request().Context(), "stats computation failed", "error", err.Error())
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch stats")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"totalFiles":     stats.TotalFiles,
			"totalSize":      stats.TotalSize,
			"totalDownloads": stats.TotalDownloads,
			"recentUploads":  stats.RecentUploads,
		},
	})
}
