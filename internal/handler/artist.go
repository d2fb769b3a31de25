package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagebook/booking-directory/internal/model"
	"github.com/stagebook/booking-directory/internal/repository"
)

// ArtistHandler serves the artist pages. The surface mirrors the venue
// handler except that artists cannot be deleted; no such route exists
// anywhere in the system.
type ArtistHandler struct {
	Artists *repository.ArtistRepo
}

// List handles GET /artists, grouped into per-city sections the same
// way the venues page is.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.ListByCity(c.Request().Context())
	if err != nil {
		return err
	}
	type artistItem struct {
		ID   uint64
		Name string
	}
	type area struct {
		City    string
		State   string
		Artists []artistItem
	}
	var areas []area
	for _, a := range artists {
		if len(areas) == 0 || areas[len(areas)-1].City != a.City {
			areas = append(areas, area{City: a.City, State: a.State})
		}
		last := &areas[len(areas)-1]
		last.Artists = append(last.Artists, artistItem{ID: a.ID, Name: a.Name})
	}
	return c.Render(http.StatusOK, "artists.html", echo.Map{"Areas": areas})
}

// Search handles POST /artists/search with form field `search_term`.
func (h *ArtistHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Artists.SearchByName(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "search_artists.html", echo.Map{
		"Term":    term,
		"Count":   len(results),
		"Results": results,
	})
}

// Detail handles GET /artists/:id with past/upcoming show partitions.
func (h *ArtistHandler) Detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.Artists.Detail(c.Request().Context(), id, time.Now().UTC())
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "artist not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "show_artist.html", echo.Map{
		"Artist":        d.Artist,
		"Genres":        d.Artist.GenreList(),
		"UpcomingShows": d.UpcomingShows,
		"PastShows":     d.PastShows,
		"UpcomingCount": d.UpcomingCount,
		"PastCount":     d.PastCount,
	})
}

// NewForm handles GET /artists/create.
func (h *ArtistHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "new_artist.html", artistFormData(c, ""))
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Render(http.StatusBadRequest, "new_artist.html", artistFormData(c, "name is required"))
	}
	a := &model.Artist{
		Name:         name,
		City:         c.FormValue("city"),
		State:        c.FormValue("state"),
		Phone:        c.FormValue("phone"),
		Genres:       formGenres(c),
		FacebookLink: c.FormValue("facebook_link"),
	}
	err := h.Artists.Create(c.Request().Context(), a)
	if errors.Is(err, repository.ErrNameTaken) {
		return c.Render(http.StatusConflict, "new_artist.html",
			artistFormData(c, fmt.Sprintf("This artist is already listed: %s, please try again", name)))
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "home.html", echo.Map{
		"Flash": fmt.Sprintf("Artist %s was successfully listed!", name),
	})
}

// EditForm handles GET /artists/:id/edit with current values prefilled.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "artist not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit_artist.html", echo.Map{
		"ID":           a.ID,
		"Name":         a.Name,
		"City":         a.City,
		"State":        a.State,
		"Phone":        a.Phone,
		"Genres":       a.Genres,
		"FacebookLink": a.FacebookLink,
		"Flash":        "",
	})
}

// Edit handles POST /artists/:id/edit. The updatable subset is the one
// repository.ArtistUpdate names; success redirects to the detail page.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u := repository.ArtistUpdate{
		Name:         strings.TrimSpace(c.FormValue("name")),
		Genres:       formGenres(c),
		City:         c.FormValue("city"),
		State:        c.FormValue("state"),
		Phone:        c.FormValue("phone"),
		FacebookLink: c.FormValue("facebook_link"),
	}
	if u.Name == "" {
		return c.Render(http.StatusBadRequest, "edit_artist.html", artistFormData(c, "name is required"))
	}
	err = h.Artists.Update(c.Request().Context(), id, u)
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "artist not found")
	case errors.Is(err, repository.ErrNameTaken):
		return c.Render(http.StatusConflict, "edit_artist.html",
			artistFormData(c, fmt.Sprintf("This artist name is already listed: %s, please try again", u.Name)))
	case err != nil:
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/artists/"+c.Param("id"))
}

// artistFormData echoes submitted form values back into the template.
func artistFormData(c echo.Context, flash string) echo.Map {
	return echo.Map{
		"ID":           c.Param("id"),
		"Name":         c.FormValue("name"),
		"City":         c.FormValue("city"),
		"State":        c.FormValue("state"),
		"Phone":        c.FormValue("phone"),
		"Genres":       c.FormValue("genres"),
		"FacebookLink": c.FormValue("facebook_link"),
		"Flash":        flash,
	}
}
