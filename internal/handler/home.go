package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home handles GET / and renders the landing page.
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", echo.Map{"Flash": ""})
}

// HTTPErrorHandler renders the shared error pages. Not-found style
// errors get the 404 page; everything else gets the 500 page with the
// original status preserved. Server-side failures are logged before
// rendering so the cause is not lost behind the generic page.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	page := "500.html"
	if code == http.StatusNotFound {
		page = "404.html"
	}
	if rerr := c.Render(code, page, echo.Map{"Message": msg}); rerr != nil {
		_ = c.String(code, http.StatusText(code))
	}
}
