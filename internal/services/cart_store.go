package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/models"
)

// CartStore keeps at most one line per (user, event). It never reserves
// inventory; availability is checked only at booking time.
type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// Add merges into an existing line for the same event by summing quantities
// instead of creating a duplicate row.
func (s *CartStore) Add(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.Status != models.EventStatusActive {
			return ErrEventNotBookable
		}

		err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).First(&item).Error
		if err == nil {
			item.Quantity += quantity
			return tx.Save(&item).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item = models.CartItem{UserID: userID, EventID: eventID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the line's quantity. Callers must reject quantities below 1
// before getting here; the store enforces it anyway.
func (s *CartStore) Update(ctx context.Context, itemID, userID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Cart lines are deleted for real, not soft-deleted. A soft-deleted row would
// still hold the (user_id, event_id) unique index and block re-adding the
// event later.
func (s *CartStore) Remove(ctx context.Context, itemID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *CartStore) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
