// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and pick
// a matching HTTP status and user message: a missing row maps to a 404
// page, a duplicate name to a conflict message on the submitted form.
package repository

import (
	"errors"
	"strings"
)

// ErrVenueNotFound indicates that a venue was not located in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound indicates that an artist was not located in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrNameTaken is returned when a create or update would reuse a name
// that already belongs to another venue or artist. Handlers should
// translate this into an HTTP 409 response with a user-facing message
// rather than a hard failure.
var ErrNameTaken = errors.New("name already taken")

// isDuplicateName reports whether err is a unique-constraint violation
// on a name column. MySQL surfaces error 1062, SQLite a "UNIQUE
// constraint failed" message. The transactional pre-check catches the
// common case; this maps the constraint backstop onto the same
// sentinel.
func isDuplicateName(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "UNIQUE constraint")
}
