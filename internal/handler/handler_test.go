package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/stagebook/booking-directory/internal/model"
	"github.com/stagebook/booking-directory/internal/repository"
	"github.com/stagebook/booking-directory/internal/view"
)

// testApp bundles a fully wired Echo instance over an in-memory SQLite
// database so handler tests exercise the same render and error paths
// the server runs.
type testApp struct {
	e       *echo.Echo
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE venues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			image_link TEXT NOT NULL DEFAULT '',
			genres TEXT NOT NULL DEFAULT '',
			seeking_talent BOOLEAN NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			image_link TEXT NOT NULL DEFAULT '',
			genres TEXT NOT NULL DEFAULT '',
			seeking_venue BOOLEAN NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE shows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL REFERENCES venues(id),
			artist_id INTEGER NOT NULL REFERENCES artists(id),
			starts_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	renderer, err := view.New()
	require.NoError(t, err)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = HTTPErrorHandler

	app := &testApp{
		e:       e,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
	}

	vh := &VenueHandler{Venues: app.venues}
	ah := &ArtistHandler{Artists: app.artists}
	sh := &ShowHandler{Shows: app.shows, Venues: app.venues, Artists: app.artists}

	e.GET("/", Home)
	e.GET("/venues", vh.List)
	e.POST("/venues/search", vh.Search)
	e.GET("/venues/create", vh.NewForm)
	e.POST("/venues/create", vh.Create)
	e.GET("/venues/:id", vh.Detail)
	e.GET("/venues/:id/edit", vh.EditForm)
	e.POST("/venues/:id/edit", vh.Edit)
	e.DELETE("/venues/:id", vh.Delete)
	e.GET("/artists", ah.List)
	e.POST("/artists/search", ah.Search)
	e.GET("/artists/create", ah.NewForm)
	e.POST("/artists/create", ah.Create)
	e.GET("/artists/:id", ah.Detail)
	e.GET("/artists/:id/edit", ah.EditForm)
	e.POST("/artists/:id/edit", ah.Edit)
	e.GET("/shows", sh.List)
	e.GET("/shows/create", sh.NewForm)
	e.POST("/shows/create", sh.Create)

	return app
}

// get issues a GET request through the full Echo stack.
func (a *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// delete issues a DELETE request through the full Echo stack.
func (a *testApp) delete(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// postForm issues a form POST through the full Echo stack.
func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) seedVenue(t *testing.T, v model.Venue) *model.Venue {
	t.Helper()
	require.NoError(t, a.venues.Create(context.Background(), &v))
	return &v
}

func (a *testApp) seedArtist(t *testing.T, ar model.Artist) *model.Artist {
	t.Helper()
	require.NoError(t, a.artists.Create(context.Background(), &ar))
	return &ar
}

func (a *testApp) seedShow(t *testing.T, venueID, artistID uint64, startsAt time.Time) *model.Show {
	t.Helper()
	s := model.Show{VenueID: venueID, ArtistID: artistID, StartsAt: startsAt}
	require.NoError(t, a.shows.Create(context.Background(), &s))
	return &s
}
