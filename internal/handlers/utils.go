package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"subsmanager-miniapp/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	// HostUserContextKey is where the identity middleware stores the resolved user
	HostUserContextKey = "host_user"
	// LaunchParamsQueryParam is how the host passes launch parameters when it opens the app
	LaunchParamsQueryParam = "tgWebAppData"
)

// HostUserFromContext returns the user the identity middleware resolved
func HostUserFromContext(c echo.Context) (models.HostUser, bool) {
	user, ok := c.Get(HostUserContextKey).(models.HostUser)
	if !ok || user.ID <= 0 {
		return models.HostUser{}, false
	}
	return user, true
}

// getIDParam parses a positive integer path parameter
func getIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}

// appOpened reports whether the request opens the app rather than following
// one of the app's own redirects: it carries launch parameters, or it was not
// navigated to from a page under the route's path.
func appOpened(c echo.Context) bool {
	if c.QueryParam(LaunchParamsQueryParam) != "" {
		return true
	}
	req := c.Request()
	ref, err := url.Parse(req.Referer())
	if err != nil || ref.Host != req.Host {
		return true
	}
	return !strings.HasPrefix(ref.Path, c.Path())
}
