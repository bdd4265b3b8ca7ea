package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventzon/eventzon/internal/models"
)

func TestEventListExcludesInactiveByDefault(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	seedEvent(t, db, eventSeed{Title: "Hidden Show", Status: models.EventStatusInactive})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Jazz Night", events[0].Title)
}

func TestEventListIncludeInactive(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	seedEvent(t, db, eventSeed{Title: "Hidden Show", Status: models.EventStatusInactive})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventListSearchMatchesTitleDescriptionVenue(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night", Venue: "Blue Hall"})
	seedEvent(t, db, eventSeed{Title: "Rock Concert", Venue: "Jazz Arena"})
	seedEvent(t, db, eventSeed{Title: "Food Fest", Description: "street food and jazz bands", Venue: "Main Square"})
	seedEvent(t, db, eventSeed{Title: "Tech Conf", Venue: "Convention Center"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{Search: "JAZZ"})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventListFilterByCategory(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night", Category: "music"})
	seedEvent(t, db, eventSeed{Title: "Tech Conf", Category: "tech"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{Category: "tech"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tech Conf", events[0].Title)
}

func TestEventListFilterByCity(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night", City: "Austin"})
	seedEvent(t, db, eventSeed{Title: "Tech Conf", City: "Dallas"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{City: "Dallas"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tech Conf", events[0].Title)
}

func TestEventListFilterByDate(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night", EventDate: "2026-09-10"})
	seedEvent(t, db, eventSeed{Title: "Tech Conf", EventDate: "2026-09-12"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{Date: "2026-09-12"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tech Conf", events[0].Title)
}

func TestEventListSortByPrice(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Tech Conf", Price: "100.00"})
	seedEvent(t, db, eventSeed{Title: "Food Fest", Price: "20.00"})
	seedEvent(t, db, eventSeed{Title: "Jazz Night", Price: "45.00"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{Sort: SortByPrice})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Food Fest", events[0].Title)
	assert.Equal(t, "Jazz Night", events[1].Title)
	assert.Equal(t, "Tech Conf", events[2].Title)
}

func TestEventListSortByDate(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Tech Conf", EventDate: "2026-09-12"})
	seedEvent(t, db, eventSeed{Title: "Jazz Night", EventDate: "2026-09-10"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{Sort: SortByDate})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Jazz Night", events[0].Title)
	assert.Equal(t, "Tech Conf", events[1].Title)
}

func TestEventListCombinedFilters(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, eventSeed{Title: "Jazz Night", City: "Austin", Category: "music"})
	seedEvent(t, db, eventSeed{Title: "Blues Evening", City: "Dallas", Category: "music"})
	seedEvent(t, db, eventSeed{Title: "Food Fest", City: "Austin", Category: "food"})
	repo := NewEventRepository(db)

	events, err := repo.List(context.Background(), EventFilters{City: "Austin", Category: "music"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Jazz Night", events[0].Title)
}

func TestEventGet(t *testing.T) {
	db := newTestDB(t)
	seeded := seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	repo := NewEventRepository(db)

	event, err := repo.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", event.Title)
	require.NotNil(t, event.Organizer)
}

func TestEventGetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)

	_, err := repo.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventDelete(t *testing.T) {
	db := newTestDB(t)
	seeded := seedEvent(t, db, eventSeed{Title: "Jazz Night"})
	repo := NewEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, seeded.ID))

	_, err := repo.Get(ctx, seeded.ID)
	require.ErrorIs(t, err, ErrEventNotFound)

	require.ErrorIs(t, repo.Delete(ctx, seeded.ID), ErrEventNotFound)
}
