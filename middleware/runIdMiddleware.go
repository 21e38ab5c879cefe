package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a non-empty `id` HTTP path parameter was provided
*/
func MandateRunIdAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for id path parameter
		runId := c.Param("id")
		if len(strings.TrimSpace(runId)) == 0 {
			// if no id was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'id' path parameter!")
		}

		return next(c)
	}
}
