package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	_, err := s.users.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return errorJSON(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			return errorJSON(c, http.StatusBadRequest, "Email already registered")
		default:
			s.logger.Error(c.Request().Context(), "registration failed", "error", err.Error())
			return errorJSON(c, http.StatusInternalServerError, "Registration failed")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return errorJSON(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, common.ErrorUnauthorized):
			return errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			s.logger.Error(c.Request().Context(), "login failed", "error", err.Error())
			return errorJSON(c, http.StatusInternalServerError, "Login failed")
		}
	}

	c.SetCookie(s.sessionCookie(token, s.sessionValidity))
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) logout(c echo.Context) error {
	c.SetCookie(s.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) me(c echo.Context) error {
	cookie, err := c.Cookie(common.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return errorJSON(c, http.StatusUnauthorized, "Not authenticated")
	}

	user, err := s.users.CurrentUser(c.Request().Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
			return errorJSON(c, http.StatusUnauthorized, "Not authenticated")
		case errors.Is(err, common.ErrorNotFound):
			return errorJSON(c, http.StatusNotFound, "User not found")
		default:
			s.logger.Error(c.Request().Context(), "auth check failed", "error", err.Error())
			return errorJSON(c, http.StatusInternalServerError, "Authentication failed")
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":        user.ID,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}

// sessionCookie builds the HTTP-only session cookie. A negative maxAge
// clears it.
func (s *Server) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     common.SessionCookiePath,
		HttpOnly: true,
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
}
