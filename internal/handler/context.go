package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"clubhub/internal/auth"
	"clubhub/internal/errors"
	"clubhub/internal/model"
	"clubhub/internal/service"
)

// sessionClaims extracts the validated session claims set by the JWT middleware.
func sessionClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || !claims.IsSessionToken() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// currentUser resolves the session subject to its user row.
func currentUser(c echo.Context, users service.UserService) (*model.User, error) {
	claims, err := sessionClaims(c)
	if err != nil {
		return nil, err
	}
	user, err := users.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return nil, httpError(err)
	}
	return user, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// httpError translates a domain error into an echo HTTP error with the
// standard response shape.
func httpError(err error) *echo.HTTPError {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
