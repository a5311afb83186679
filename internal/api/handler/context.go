package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// AccountIDKey is the echo context key the Auth middleware stores the
// authenticated account id under.
const AccountIDKey = "account_id"

// ctxAccountID returns the account id injected by the Auth middleware. Its
// absence means the route was mounted without the middleware.
func ctxAccountID(c echo.Context) (int64, error) {
	id, _ := c.Get(AccountIDKey).(int64)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
