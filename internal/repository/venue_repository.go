// Package repository contains data access logic for the booking
// directory. This file defines repository methods for venues. All
// mutating operations run inside a transaction: commit on success,
// rollback on any failure, so a partial write never becomes visible.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stagebook/booking-directory/internal/model"
)

// placeholderImageLink substitutes for show entries whose counterpart
// has no image of its own. The directory has always rendered this
// fixed placeholder on detail pages.
const placeholderImageLink = "https://www.freedigitalphotos.net/images/img/homepage/394230.jpg"

// venueColumns is the column list shared by every venue SELECT.
const venueColumns = `v.id, v.name, v.city, v.state, v.address, v.phone, v.website,
	v.facebook_link, v.image_link, v.genres, v.seeking_talent, v.seeking_description`

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// VenueWithShowCount annotates a venue with the number of shows that
// reference it. The count covers all shows, past and future alike;
// list pages label it "upcoming" but the aggregation has never been
// time-filtered.
type VenueWithShowCount struct {
	model.Venue
	ShowCount int
}

// VenueShow is one show entry on a venue detail page, enriched with
// the counterpart artist.
type VenueShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartsAt        time.Time
}

// StartTime returns the entry's start rendered for display.
func (s VenueShow) StartTime() string {
	return model.FormatShowTime(s.StartsAt)
}

// VenueDetail is a venue plus its shows partitioned into past and
// upcoming sets relative to a reference time.
type VenueDetail struct {
	Venue         model.Venue
	PastShows     []VenueShow
	UpcomingShows []VenueShow
	PastCount     int
	UpcomingCount int
}

// VenueUpdate names the exact field subset an edit may change. website,
// image_link and the seeking fields are deliberately absent: edits have
// never touched them and the struct makes that contract explicit.
type VenueUpdate struct {
	Name         string
	Genres       string
	Address      string
	City         string
	State        string
	Phone        string
	FacebookLink string
}

// Create inserts a new venue and assigns the generated ID back to the
// venue struct. The name pre-check and the insert share one
// transaction; a venue with the same exact name already present yields
// ErrNameTaken and leaves the store unchanged. The UNIQUE index on
// name backstops the pre-check and maps onto the same sentinel.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) (err error) {
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
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues WHERE name = ?`, v.Name).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		err = ErrNameTaken
		return err
	}

	const q = `INSERT INTO venues
		(name, city, state, address, phone, website, facebook_link, image_link, genres, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, execErr := tx.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Website,
		v.FacebookLink, v.ImageLink, v.Genres, v.SeekingTalent, v.SeekingDescription)
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
	v.ID = uint64(id)
	return nil
}

// GetByID retrieves a venue by its ID. It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues v WHERE v.id = ?`
	var v model.Venue
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Website,
		&v.FacebookLink, &v.ImageLink, &v.Genres, &v.SeekingTalent, &v.SeekingDescription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByCity returns all venues ordered by city, ties broken by row
// id, each annotated with its show count. Grouping rows into per-city
// sections is left to the caller, which walks the ordered sequence.
func (r *VenueRepo) ListByCity(ctx context.Context) ([]VenueWithShowCount, error) {
	const q = `SELECT ` + venueColumns + `, COUNT(s.id)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		GROUP BY v.id
		ORDER BY v.city ASC, v.id ASC`
	return r.queryWithCount(ctx, q)
}

// SearchByName performs a case-insensitive substring match on venue
// names. An empty term matches every venue. No result order is
// guaranteed.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]VenueWithShowCount, error) {
	const q = `SELECT ` + venueColumns + `, COUNT(s.id)
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE LOWER(v.name) LIKE LOWER(?)
		GROUP BY v.id`
	return r.queryWithCount(ctx, q, "%"+term+"%")
}

func (r *VenueRepo) queryWithCount(ctx context.Context, q string, args ...any) ([]VenueWithShowCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []VenueWithShowCount
	for rows.Next() {
		var v VenueWithShowCount
		if err := rows.Scan(
			&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Website,
			&v.FacebookLink, &v.ImageLink, &v.Genres, &v.SeekingTalent, &v.SeekingDescription,
			&v.ShowCount,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the updatable field subset of a venue. It returns
// ErrVenueNotFound when the row does not exist and ErrNameTaken when
// the new name collides with another venue. Submitting values equal to
// the current ones is a no-op success.
func (r *VenueRepo) Update(ctx context.Context, id uint64, u VenueUpdate) error {
	const q = `UPDATE venues
		SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?, facebook_link = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Genres, u.Address, u.City, u.State, u.Phone, u.FacebookLink, id)
	if err != nil {
		if isDuplicateName(err) {
			return ErrNameTaken
		}
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected is either "row missing" or "values identical".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}

// Delete removes a venue and every show that references it inside one
// transaction. Any failure rolls back both deletions. It returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
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

	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// Detail loads a venue together with its shows partitioned into past
// and upcoming sets by strict comparison against now. A show whose
// time equals now exactly lands in neither partition. Each entry
// carries the counterpart artist's name and the placeholder image.
func (r *VenueRepo) Detail(ctx context.Context, id uint64, now time.Time) (*VenueDetail, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `SELECT s.artist_id, a.name, s.starts_at
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.id ASC`
	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d := &VenueDetail{Venue: *v}
	for rows.Next() {
		var e VenueShow
		if err := rows.Scan(&e.ArtistID, &e.ArtistName, &e.StartsAt); err != nil {
			return nil, err
		}
		e.ArtistImageLink = placeholderImageLink
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
