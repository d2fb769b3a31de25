package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the directory tables when they do not exist yet.
// Venue and artist names carry a UNIQUE index as a backstop for the
// transactional name pre-check in the repositories.  Shows reference
// both parents with restrictive foreign keys; venue deletion removes
// dependent shows explicitly inside one transaction rather than via
// cascade.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			city VARCHAR(120) NOT NULL DEFAULT '',
			state VARCHAR(120) NOT NULL DEFAULT '',
			address VARCHAR(120) NOT NULL DEFAULT '',
			phone VARCHAR(120) NOT NULL DEFAULT '',
			website VARCHAR(200) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			image_link VARCHAR(500) NOT NULL DEFAULT '',
			genres VARCHAR(120) NOT NULL DEFAULT '',
			seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
			seeking_description VARCHAR(500) NOT NULL DEFAULT '',
			UNIQUE KEY uq_venues_name (name)
		)`,
		`CREATE TABLE IF NOT EXISTS artists (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			city VARCHAR(120) NOT NULL DEFAULT '',
			state VARCHAR(120) NOT NULL DEFAULT '',
			phone VARCHAR(120) NOT NULL DEFAULT '',
			website VARCHAR(200) NOT NULL DEFAULT '',
			facebook_link VARCHAR(120) NOT NULL DEFAULT '',
			image_link VARCHAR(500) NOT NULL DEFAULT '',
			genres VARCHAR(120) NOT NULL DEFAULT '',
			seeking_venue BOOLEAN NOT NULL DEFAULT FALSE,
			seeking_description VARCHAR(500) NOT NULL DEFAULT '',
			UNIQUE KEY uq_artists_name (name)
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			venue_id BIGINT UNSIGNED NOT NULL,
			artist_id BIGINT UNSIGNED NOT NULL,
			starts_at DATETIME NOT NULL,
			KEY idx_shows_venue (venue_id),
			KEY idx_shows_artist (artist_id),
			CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(id),
			CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
