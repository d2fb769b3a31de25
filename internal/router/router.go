// Package router defines how HTTP routes are registered for the directory.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagebook/booking-directory/internal/handler"
)

// RegisterRoutes registers the operational endpoints on the provided
// Echo instance: a health check for load balancers and the Prometheus
// scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterPages registers every page-rendering and form-submission
// route. Venue and artist surfaces mirror each other with two
// deliberate gaps: artists have no delete route, and shows have no
// edit route at all.
func RegisterPages(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler) {
	e.GET("/", handler.Home)

	// Venues
	e.GET("/venues", v.List)
	e.POST("/venues/search", v.Search)
	e.GET("/venues/create", v.NewForm)
	e.POST("/venues/create", v.Create)
	e.GET("/venues/:id", v.Detail)
	e.GET("/venues/:id/edit", v.EditForm)
	e.POST("/venues/:id/edit", v.Edit)
	e.DELETE("/venues/:id", v.Delete)

	// Artists
	e.GET("/artists", a.List)
	e.POST("/artists/search", a.Search)
	e.GET("/artists/create", a.NewForm)
	e.POST("/artists/create", a.Create)
	e.GET("/artists/:id", a.Detail)
	e.GET("/artists/:id/edit", a.EditForm)
	e.POST("/artists/:id/edit", a.Edit)

	// Shows
	e.GET("/shows", s.List)
	e.GET("/shows/create", s.NewForm)
	e.POST("/shows/create", s.Create)
}
