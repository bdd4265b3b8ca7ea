package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventzon/eventzon/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named in-memory database so connections from
	// gorm's pool all see the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}, &models.CartItem{}, &models.Booking{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Email: fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Name:  "Test User",
		Role:  models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type eventSeed struct {
	Title            string
	Description      string
	Category         string
	Venue            string
	City             string
	EventDate        string
	Price            string
	AvailableTickets int
	Status           string
}

func seedEvent(t *testing.T, db *gorm.DB, seed eventSeed) *models.Event {
	t.Helper()

	if seed.Title == "" {
		seed.Title = "Jazz Night"
	}
	if seed.Venue == "" {
		seed.Venue = "Blue Hall"
	}
	if seed.City == "" {
		seed.City = "Austin"
	}
	if seed.Category == "" {
		seed.Category = "music"
	}
	if seed.EventDate == "" {
		seed.EventDate = "2026-09-10"
	}
	if seed.Price == "" {
		seed.Price = "45.00"
	}
	if seed.Status == "" {
		seed.Status = models.EventStatusActive
	}

	price, err := decimal.NewFromString(seed.Price)
	require.NoError(t, err)

	organizer := seedUser(t, db)
	event := &models.Event{
		Title:            seed.Title,
		Description:      seed.Description,
		Category:         seed.Category,
		Venue:            seed.Venue,
		City:             seed.City,
		EventDate:        seed.EventDate,
		StartTime:        "19:00",
		EndTime:          "23:00",
		Price:            price,
		AvailableTickets: seed.AvailableTickets,
		Status:           seed.Status,
		OrganizerID:      organizer.ID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func reloadEvent(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, db.Where("id = ?", id).First(&event).Error)
	return &event
}
