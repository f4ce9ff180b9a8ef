package handler

import (
	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the operator id injected by the session middleware. An
// empty result means the route was registered outside the gate; audit entries
// then record a system action.
func ctxUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}
