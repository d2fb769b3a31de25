// Package handler exposes the HTTP handlers behind the directory's
// pages and form submissions. Handlers translate repository sentinel
// errors into HTTP statuses: missing rows become 404 pages, duplicate
// names re-render the submitted form with a conflict message, and
// anything unexpected bubbles up to the 500 page.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/booking-directory/internal/model"
	"github.com/stagebook/booking-directory/internal/repository"
)

// VenueHandler serves the venue pages: list, search, detail, create,
// edit and delete.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

// List handles GET /venues. Venues arrive ordered by city; grouping
// the ordered sequence into per-city sections happens here, not in SQL.
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.Venues.ListByCity(c.Request().Context())
	if err != nil {
		return err
	}
	type venueItem struct {
		ID        uint64
		Name      string
		ShowCount int
	}
	type area struct {
		City   string
		State  string
		Venues []venueItem
	}
	var areas []area
	for _, v := range venues {
		if len(areas) == 0 || areas[len(areas)-1].City != v.City {
			areas = append(areas, area{City: v.City, State: v.State})
		}
		last := &areas[len(areas)-1]
		last.Venues = append(last.Venues, venueItem{ID: v.ID, Name: v.Name, ShowCount: v.ShowCount})
	}
	return c.Render(http.StatusOK, "venues.html", echo.Map{"Areas": areas})
}

// Search handles POST /venues/search with form field `search_term`.
// An empty term matches every venue.
func (h *VenueHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Venues.SearchByName(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "search_venues.html", echo.Map{
		"Term":    term,
		"Count":   len(results),
		"Results": results,
	})
}

// Detail handles GET /venues/:id and renders the venue page with its
// shows split into past and upcoming sets.
func (h *VenueHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.Venues.Detail(c.Request().Context(), id, time.Now().UTC())
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "show_venue.html", echo.Map{
		"Venue":         d.Venue,
		"Genres":        d.Venue.GenreList(),
		"UpcomingShows": d.UpcomingShows,
		"PastShows":     d.PastShows,
		"UpcomingCount": d.UpcomingCount,
		"PastCount":     d.PastCount,
	})
}

// NewForm handles GET /venues/create.
func (h *VenueHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "new_venue.html", venueFormData(c, ""))
}

// Create handles POST /venues/create. A duplicate name re-renders the
// form with a conflict message and leaves the store unchanged.
func (h *VenueHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Render(http.StatusBadRequest, "new_venue.html", venueFormData(c, "name is required"))
	}
	v := &model.Venue{
		Name:         name,
		City:         c.FormValue("city"),
		State:        c.FormValue("state"),
		Address:      c.FormValue("address"),
		Phone:        c.FormValue("phone"),
		Genres:       formGenres(c),
		FacebookLink: c.FormValue("facebook_link"),
	}
	err := h.Venues.Create(c.Request().Context(), v)
	if errors.Is(err, repository.ErrNameTaken) {
		return c.Render(http.StatusConflict, "new_venue.html",
			venueFormData(c, fmt.Sprintf("This venue is already listed: %s, please try again", name)))
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "home.html", echo.Map{
		"Flash": fmt.Sprintf("Venue %s was successfully listed!", name),
	})
}

// EditForm handles GET /venues/:id/edit with the current values
// prefilled.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit_venue.html", echo.Map{
		"ID":           v.ID,
		"Name":         v.Name,
		"City":         v.City,
		"State":        v.State,
		"Address":      v.Address,
		"Phone":        v.Phone,
		"Genres":       v.Genres,
		"FacebookLink": v.FacebookLink,
		"Flash":        "",
	})
}

// Edit handles POST /venues/:id/edit. Only the fields named in
// repository.VenueUpdate can change; everything else the venue carries
// stays as created. On success the client is redirected to the detail
// page.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u := repository.VenueUpdate{
		Name:         strings.TrimSpace(c.FormValue("name")),
		Genres:       formGenres(c),
		Address:      c.FormValue("address"),
		City:         c.FormValue("city"),
		State:        c.FormValue("state"),
		Phone:        c.FormValue("phone"),
		FacebookLink: c.FormValue("facebook_link"),
	}
	if u.Name == "" {
		return c.Render(http.StatusBadRequest, "edit_venue.html", venueFormData(c, "name is required"))
	}
	err = h.Venues.Update(c.Request().Context(), id, u)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	case errors.Is(err, repository.ErrNameTaken):
		return c.Render(http.StatusConflict, "edit_venue.html",
			venueFormData(c, fmt.Sprintf("This venue name is already listed: %s, please try again", u.Name)))
	case err != nil:
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/venues/"+c.Param("id"))
}

// Delete handles DELETE /venues/:id. The venue and every show that
// references it go away in one transaction.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.Venues.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID extracts the numeric :id path parameter. A non-numeric id
// can never name a row, so it is reported as not found.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "invalid id")
	}
	return id, nil
}

// formGenres flattens the submitted genre tags. Multi-select forms post
// repeated `genres` values; plain inputs post one comma-separated
// string. Both collapse to the stored delimited format.
func formGenres(c echo.Context) string {
	if err := c.Request().ParseForm(); err == nil {
		if vals := c.Request().Form["genres"]; len(vals) > 1 {
			return model.JoinGenres(vals)
		}
	}
	return model.JoinGenres(strings.Split(c.FormValue("genres"), ","))
}

// venueFormData echoes submitted form values back into the template so
// a failed submission does not wipe the user's input.
func venueFormData(c echo.Context, flash string) echo.Map {
	return echo.Map{
		"ID":           c.Param("id"),
		"Name":         c.FormValue("name"),
		"City":         c.FormValue("city"),
		"State":        c.FormValue("state"),
		"Address":      c.FormValue("address"),
		"Phone":        c.FormValue("phone"),
		"Genres":       c.FormValue("genres"),
		"FacebookLink": c.FormValue("facebook_link"),
		"Flash":        flash,
	}
}
