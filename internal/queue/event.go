// Package queue defines message payloads exchanged over the message broker.
package queue

// ShowListedEvent is published when a show is successfully created.
// It carries enough context for downstream consumers to log or notify
// without querying the primary database.
type ShowListedEvent struct {
	ShowID     uint64 `json:"show_id"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	StartsAt   string `json:"starts_at"`
	ListedAt   string `json:"listed_at"`
}
