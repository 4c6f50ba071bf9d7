package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clientportal/intake-gateway/internal/core/ports"
)

// AuthHandler drives the admin session. The opaque token never leaves the
// gateway: the browser only learns whether a session exists.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Login(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful"})
}

// Logout handles POST /api/admin/logout. Logging out of an already-ended
// session is a no-op, not an error.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
