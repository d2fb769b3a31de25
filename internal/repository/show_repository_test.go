package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebook/booking-directory/internal/model"
)

func TestShowCreateRoundTrip(t *testing.T) {
	venues, artists, shows, _ := newTestRepos(t)
	ctx := context.Background()

	v := mustVenue(t, venues, model.Venue{Name: "The Musical Hop"})
	a := mustArtist(t, artists, model.Artist{Name: "Guns N Petals"})

	startsAt, err := model.ParseShowTime("2019-05-21T21:30:00")
	require.NoError(t, err)

	s := model.Show{VenueID: v.ID, ArtistID: a.ID, StartsAt: startsAt}
	require.NoError(t, shows.Create(ctx, &s))
	assert.NotZero(t, s.ID)

	list, err := shows.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].VenueID)
	assert.Equal(t, "The Musical Hop", list[0].VenueName)
	assert.Equal(t, a.ID, list[0].ArtistID)
	assert.Equal(t, "Guns N Petals", list[0].ArtistName)
	assert.Equal(t, "05/21/2019, 21:30", list[0].StartTime())
}

func TestShowCreateRejectsDanglingReferences(t *testing.T) {
	venues, artists, shows, _ := newTestRepos(t)
	ctx := context.Background()

	v := mustVenue(t, venues, model.Venue{Name: "The Musical Hop"})
	a := mustArtist(t, artists, model.Artist{Name: "Guns N Petals"})
	when := time.Now().UTC().Add(24 * time.Hour)

	err := shows.Create(ctx, &model.Show{VenueID: 9999, ArtistID: a.ID, StartsAt: when})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	err = shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: 9999, StartsAt: when})
	assert.ErrorIs(t, err, ErrArtistNotFound)

	list, err := shows.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "failed creates must not leave rows behind")
}

func TestShowListAllKeepsStoreOrderNotTimeOrder(t *testing.T) {
	venues, artists, shows, _ := newTestRepos(t)
	ctx := context.Background()

	v := mustVenue(t, venues, model.Venue{Name: "The Musical Hop"})
	a := mustArtist(t, artists, model.Artist{Name: "Guns N Petals"})

	later := mustShow(t, shows, v.ID, a.ID, time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC))
	earlier := mustShow(t, shows, v.ID, a.ID, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))

	list, err := shows.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, later.ID, list[0].ID, "rows come back in insertion order")
	assert.Equal(t, earlier.ID, list[1].ID)
}

func TestShowGetByID(t *testing.T) {
	venues, artists, shows, _ := newTestRepos(t)
	ctx := context.Background()

	v := mustVenue(t, venues, model.Venue{Name: "The Musical Hop"})
	a := mustArtist(t, artists, model.Artist{Name: "Guns N Petals"})
	when := time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC)
	s := mustShow(t, shows, v.ID, a.ID, when)

	got, err := shows.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.VenueID)
	assert.Equal(t, a.ID, got.ArtistID)
	assert.True(t, got.StartsAt.Equal(when), "stored %v, got %v", when, got.StartsAt)

	_, err = shows.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrShowNotFound)
}
