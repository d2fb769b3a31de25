package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/stagebook/booking-directory/internal/model"
)

// openTestDB spins up an in-memory SQLite database with the directory
// schema. The SQL in the repositories sticks to the portable subset
// (? placeholders, LOWER/LIKE, COUNT, LEFT JOIN), so the same queries
// run against MySQL in production and SQLite here.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	createDirectorySchema(t, db)
	return db
}

// createDirectorySchema applies the directory tables to a test handle.
func createDirectorySchema(t *testing.T, db *sql.DB) {
	t.Helper()
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
}

// newTestRepos wires all three repositories over one test database.
func newTestRepos(t *testing.T) (*VenueRepo, *ArtistRepo, *ShowRepo, *sql.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db), db
}

// mustVenue inserts a venue and fails the test on error.
func mustVenue(t *testing.T, r *VenueRepo, v model.Venue) *model.Venue {
	t.Helper()
	require.NoError(t, r.Create(context.Background(), &v))
	return &v
}

// mustArtist inserts an artist and fails the test on error.
func mustArtist(t *testing.T, r *ArtistRepo, a model.Artist) *model.Artist {
	t.Helper()
	require.NoError(t, r.Create(context.Background(), &a))
	return &a
}

// mustShow inserts a show and fails the test on error.
func mustShow(t *testing.T, r *ShowRepo, venueID, artistID uint64, startsAt time.Time) *model.Show {
	t.Helper()
	s := model.Show{VenueID: venueID, ArtistID: artistID, StartsAt: startsAt}
	require.NoError(t, r.Create(context.Background(), &s))
	return &s
}
