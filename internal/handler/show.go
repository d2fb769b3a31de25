package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/booking-directory/internal/model"
	"github.com/stagebook/booking-directory/internal/monitoring"
	"github.com/stagebook/booking-directory/internal/queue"
	"github.com/stagebook/booking-directory/internal/repository"
	queue_publisher "github.com/stagebook/booking-directory/internal/service"
)

// ShowHandler serves the shows list and the create form. It aggregates
// all three repositories: creating a show touches venue and artist
// names for the published event.
type ShowHandler struct {
	Shows   *repository.ShowRepo
	Venues  *repository.VenueRepo
	Artists *repository.ArtistRepo
}

// List handles GET /shows. Rows come back in store order; the page has
// never sorted by time.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "shows.html", echo.Map{"Shows": shows})
}

// NewForm handles GET /shows/create.
func (h *ShowHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "new_show.html", showFormData(c, ""))
}

// Create handles POST /shows/create. Malformed time text is rejected
// here, at write time, instead of blowing up later on a read path. A
// dangling venue or artist id re-renders the form with a message. On
// success a show.listed event is published; publish failures are
// logged by the publisher and never fail the request.
func (h *ShowHandler) Create(c echo.Context) error {
	artistID, err1 := strconv.ParseUint(c.FormValue("artist_id"), 10, 64)
	venueID, err2 := strconv.ParseUint(c.FormValue("venue_id"), 10, 64)
	if err1 != nil || err2 != nil {
		return c.Render(http.StatusBadRequest, "new_show.html", showFormData(c, "artist_id and venue_id must be numeric"))
	}
	startsAt, err := model.ParseShowTime(c.FormValue("start_time"))
	if err != nil {
		return c.Render(http.StatusBadRequest, "new_show.html", showFormData(c, "invalid show time, use YYYY-MM-DDTHH:MM:SS"))
	}

	s := &model.Show{VenueID: venueID, ArtistID: artistID, StartsAt: startsAt}
	err = h.Shows.Create(c.Request().Context(), s)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return c.Render(http.StatusBadRequest, "new_show.html", showFormData(c, "no venue with that id"))
	case errors.Is(err, repository.ErrArtistNotFound):
		return c.Render(http.StatusBadRequest, "new_show.html", showFormData(c, "no artist with that id"))
	case err != nil:
		return err
	}

	monitoring.CountShowListed()
	go h.publishListed(s)

	return c.Render(http.StatusOK, "home.html", echo.Map{"Flash": "Show was successfully listed!"})
}

// publishListed assembles and publishes the show.listed event off the
// request path. Name lookups and the publish itself run against a
// fresh context so a finished request does not cancel them.
func (h *ShowHandler) publishListed(s *model.Show) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.ShowListedEvent{
		ShowID:   s.ID,
		VenueID:  s.VenueID,
		ArtistID: s.ArtistID,
		StartsAt: s.StartsAt.Format("2006-01-02 15:04:05"),
		ListedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	if v, err := h.Venues.GetByID(ctx, s.VenueID); err == nil {
		ev.VenueName = v.Name
	}
	if a, err := h.Artists.GetByID(ctx, s.ArtistID); err == nil {
		ev.ArtistName = a.Name
	}
	_ = queue_publisher.PublishShowListed(ctx, ev)
}

// showFormData echoes submitted form values back into the template.
func showFormData(c echo.Context, flash string) echo.Map {
	return echo.Map{
		"ArtistID":  c.FormValue("artist_id"),
		"VenueID":   c.FormValue("venue_id"),
		"StartTime": c.FormValue("start_time"),
		"Flash":     flash,
	}
}
