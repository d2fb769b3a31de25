package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebook/booking-directory/internal/model"
)

func TestArtistCreateAndList(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm("/artists/create", url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artist Guns N Petals was successfully listed!")

	rec = app.get("/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "Guns N Petals")
}

func TestArtistCreateDuplicateNameConflicts(t *testing.T) {
	app := newTestApp(t)
	app.seedArtist(t, model.Artist{Name: "Guns N Petals"})

	rec := app.postForm("/artists/create", url.Values{"name": {"Guns N Petals"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This artist is already listed: Guns N Petals, please try again")
}

func TestArtistDetailMissingRendersNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/artists/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestArtistEditChangesSubsetAndRedirects(t *testing.T) {
	app := newTestApp(t)
	a := app.seedArtist(t, model.Artist{Name: "Guns N Petals", City: "San Francisco", Website: "https://gunsnpetalsband.com"})

	rec := app.postForm("/artists/1/edit", url.Values{
		"name": {"Guns N Petals"},
		"city": {"Los Angeles"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/artists/1", rec.Header().Get(echo.HeaderLocation))

	got, err := app.artists.GetByID(t.Context(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles", got.City)
	assert.Equal(t, "https://gunsnpetalsband.com", got.Website, "website is not an editable field")
}

func TestArtistSearchMatchesSubstring(t *testing.T) {
	app := newTestApp(t)
	app.seedArtist(t, model.Artist{Name: "Guns N Petals"})
	app.seedArtist(t, model.Artist{Name: "The Wild Sax Band"})

	rec := app.postForm("/artists/search", url.Values{"search_term": {"guns"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Guns N Petals")
	assert.NotContains(t, body, "The Wild Sax Band")
}

func TestArtistHasNoDeleteRoute(t *testing.T) {
	app := newTestApp(t)
	app.seedArtist(t, model.Artist{Name: "Guns N Petals"})

	rec := app.delete("/artists/1")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
