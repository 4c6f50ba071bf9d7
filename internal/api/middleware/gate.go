package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clientportal/intake-gateway/internal/core/domain"
	"github.com/clientportal/intake-gateway/internal/core/session"
)

// Gate protects admin views: the request proceeds only when the session
// store says they may render. Everything else gets the unauthenticated
// error, which the front end treats as a redirect to the login view. The
// token value is never inspected here.
func Gate(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.CanRender(sessions.State()) {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
