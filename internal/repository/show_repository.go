// This file defines repository methods for shows. Shows are immutable
// once created: there is no update operation, and deletion only happens
// as part of removing the owning venue.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stagebook/booking-directory/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// ShowWithNames is a show enriched with both counterpart names for the
// shows list page.
type ShowWithNames struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartsAt        time.Time
}

// StartTime returns the show's start rendered for display.
func (s ShowWithNames) StartTime() string {
	return model.FormatShowTime(s.StartsAt)
}

// Create inserts a new show. Both referenced rows are verified inside
// the insert transaction, so a dangling venue or artist id surfaces as
// ErrVenueNotFound or ErrArtistNotFound instead of a bare constraint
// error. The generated ID is assigned back to the show struct.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) (err error) {
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
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, s.VenueID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, s.ArtistID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}

	res, execErr := tx.ExecContext(ctx,
		`INSERT INTO shows (venue_id, artist_id, starts_at) VALUES (?, ?, ?)`,
		s.VenueID, s.ArtistID, s.StartsAt)
	if execErr != nil {
		err = execErr
		return err
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		err = idErr
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show with both counterpart names. Rows come
// back in row-id order, not time order; the list page has never sorted
// by time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowWithNames, error) {
	const q = `SELECT s.id, s.venue_id, v.name, s.artist_id, a.name, s.starts_at
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ShowWithNames
	for rows.Next() {
		var s ShowWithNames
		if err := rows.Scan(&s.ID, &s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName, &s.StartsAt); err != nil {
			return nil, err
		}
		s.ArtistImageLink = placeholderImageLink
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a show by its ID. It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT id, venue_id, artist_id, starts_at FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}
