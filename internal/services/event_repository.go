package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/models"
)

// EventFilters narrows and orders an event listing. Zero values mean "no
// filter". Date must be YYYY-MM-DD to match Event.EventDate.
type EventFilters struct {
	Search   string
	Category string
	City     string
	Date     string
	Sort     string
	// IncludeInactive lifts the status=active restriction; only admin
	// listings set it.
	IncludeInactive bool
}

const (
	SortByDate       = "date"
	SortByPrice      = "price"
	SortByPopularity = "popularity"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context, filters EventFilters) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})

	if !filters.IncludeInactive {
		query = query.Where("status = ?", models.EventStatusActive)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(venue) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.City != "" {
		query = query.Where("city = ?", filters.City)
	}
	if filters.Date != "" {
		query = query.Where("event_date = ?", filters.Date)
	}

	switch filters.Sort {
	case SortByDate:
		query = query.Order("event_date ASC").Order("start_time ASC")
	case SortByPrice:
		query = query.Order("price ASC")
	case SortByPopularity:
		// Events carry no sales counter; newest first approximates it.
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var events []models.Event
	if err := query.Preload("Organizer").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Organizer").Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
