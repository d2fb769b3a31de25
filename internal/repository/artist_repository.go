// This file defines repository methods for artists. The surface mirrors
// the venue repository with one deliberate asymmetry: there is no
// Delete. Artist removal is unsupported across the whole system.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stagebook/booking-directory/internal/model"
)

// artistColumns is the column list shared by every artist SELECT.
const artistColumns = `a.id, a.name, a.city, a.state, a.phone, a.website,
	a.facebook_link, a.image_link, a.genres, a.seeking_venue, a.seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// ArtistWithShowCount annotates an artist with the number of shows
// that reference it. As with venues, the count is not time-filtered.
type ArtistWithShowCount struct {
	model.Artist
	ShowCount int
}

// ArtistShow is one show entry on an artist detail page, enriched with
// the counterpart venue.
type ArtistShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartsAt       time.Time
}

// StartTime returns the entry's start rendered for display.
func (s ArtistShow) StartTime() string {
	return model.FormatShowTime(s.StartsAt)
}

// ArtistDetail is an artist plus its shows partitioned into past and
// upcoming sets relative to a reference time.
type ArtistDetail struct {
	Artist        model.Artist
	PastShows     []ArtistShow
	UpcomingShows []ArtistShow
	PastCount     int
	UpcomingCount int
}

// ArtistUpdate names the exact field subset an edit may change. As
// with venues, website, image_link and the seeking fields stay out of
// reach of edits on purpose.
type ArtistUpdate struct {
	Name         string
	Genres       string
	City         string
	State        string
	Phone        string
	FacebookLink string
}

// Create inserts a new artist and assigns the generated ID back to the
// artist struct. Name pre-check and insert share one transaction; a
// duplicate name yields ErrNameTaken and leaves the store unchanged.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists WHERE name = ?`, a.Name).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		err = ErrNameTaken
		return err
	}

	const q = `INSERT INTO artists
		(name, city, state, phone, website, facebook_link, image_link, genres, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, execErr := tx.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Website,
		a.FacebookLink, a.ImageLink, a.Genres, a.SeekingVenue, a.SeekingDescription)
	if execErr != nil {
		if isDuplicateName(execErr) {
			err = ErrNameTaken
		} else {
			err = execErr
		}
		return err
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		err = idErr
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an artist by its ID. It returns ErrArtistNotFound
// if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists a WHERE a.id = ?`
	var a model.Artist
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Website,
		&a.FacebookLink, &a.ImageLink, &a.Genres, &a.SeekingVenue, &a.SeekingDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByCity returns all artists ordered by city, ties broken by row
// id, each annotated with its show count.
func (r *ArtistRepo) ListByCity(ctx context.Context) ([]ArtistWithShowCount, error) {
	const q = `SELECT ` + artistColumns + `, COUNT(s.id)
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.city ASC, a.id ASC`
	return r.queryWithCount(ctx, q)
}

// SearchByName performs a case-insensitive substring match on artist
// names. An empty term matches every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]ArtistWithShowCount, error) {
	const q = `SELECT ` + artistColumns + `, COUNT(s.id)
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE LOWER(a.name) LIKE LOWER(?)
		GROUP BY a.id`
	return r.queryWithCount(ctx, q, "%"+term+"%")
}

func (r *ArtistRepo) queryWithCount(ctx context.Context, q string, args ...any) ([]ArtistWithShowCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ArtistWithShowCount
	for rows.Next() {
		var a ArtistWithShowCount
		if err := rows.Scan(
			&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Website,
			&a.FacebookLink, &a.ImageLink, &a.Genres, &a.SeekingVenue, &a.SeekingDescription,
			&a.ShowCount,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the updatable field subset of an artist. It
// returns ErrArtistNotFound when the row does not exist and
// ErrNameTaken on a name collision.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, u ArtistUpdate) error {
	const q = `UPDATE artists
		SET name = ?, genres = ?, city = ?, state = ?, phone = ?, facebook_link = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Genres, u.City, u.State, u.Phone, u.FacebookLink, id)
	if err != nil {
		if isDuplicateName(err) {
			return ErrNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// Detail loads an artist together with its shows partitioned into past
// and upcoming sets by strict comparison against now, each entry
// enriched with the counterpart venue's name.
func (r *ArtistRepo) Detail(ctx context.Context, id uint64, now time.Time) (*ArtistDetail, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `SELECT s.venue_id, v.name, s.starts_at
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d := &ArtistDetail{Artist: *a}
	for rows.Next() {
		var e ArtistShow
		if err := rows.Scan(&e.VenueID, &e.VenueName, &e.StartsAt); err != nil {
			return nil, err
		}
		e.VenueImageLink = placeholderImageLink
		switch {
		case e.StartsAt.Before(now):
			d.PastShows = append(d.PastShows, e)
		case e.StartsAt.After(now):
			d.UpcomingShows = append(d.UpcomingShows, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	d.PastCount = len(d.PastShows)
	d.UpcomingCount = len(d.UpcomingShows)
	return d, nil
}
