package model

import (
	"errors"
	"strings"
	"time"
)

// Show represents a scheduled booking of one artist at one venue at a
// specific time.  Both foreign keys are mandatory; a show has no
// meaning without them.  Shows are immutable once created.  This
// struct corresponds to a row in the `shows` table.
//
// Fields:
//	ID       – primary key identifier.
//	VenueID  – venue where the show takes place.
//	ArtistID – artist performing the show.
//	StartsAt – when the show begins, stored as a DATETIME in UTC.
type Show struct {
	ID       uint64    // shows.id
	VenueID  uint64    // shows.venue_id
	ArtistID uint64    // shows.artist_id
	StartsAt time.Time // shows.starts_at
}

// ErrInvalidShowTime indicates that submitted show time text could not
// be parsed with any accepted layout.  Creation must fail with this
// error rather than persisting opaque text.
var ErrInvalidShowTime = errors.New("invalid show time")

// showTimeLayouts are the input formats accepted on show creation.
var showTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// renderTimeLayout is the fixed output format used on every page.
const renderTimeLayout = "01/02/2006, 15:04"

// ParseShowTime validates raw form input and converts it into a UTC
// timestamp.  It returns ErrInvalidShowTime when no layout matches.
func ParseShowTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidShowTime
}

// FormatShowTime renders a timestamp as "MM/DD/YYYY, HH:MM".
func FormatShowTime(t time.Time) string {
	return t.Format(renderTimeLayout)
}

// StartTime returns the show's start rendered for display.
func (s *Show) StartTime() string {
	return FormatShowTime(s.StartsAt)
}

// JoinGenres flattens a genre tag list into the single delimited string
// stored in the database.  Blank tags are dropped.
func JoinGenres(genres []string) string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return strings.Join(out, ", ")
}

// SplitGenres expands a stored genre string back into a tag list.
// An empty string yields a nil slice.
func SplitGenres(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
