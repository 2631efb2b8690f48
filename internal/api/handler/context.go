package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the session user id injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing id means the
// middleware did not run or the token carried no identity.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bearerToken pulls the raw token out of the Authorization header for the
// endpoints that verify a session explicitly.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return parts[1], nil
}
