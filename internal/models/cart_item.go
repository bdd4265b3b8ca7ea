package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem holds a pending, unconfirmed request to buy Quantity tickets for
// one event. At most one row exists per (UserID, EventID); re-adding the same
// event merges quantities. Cart lines never touch Event.AvailableTickets.
type CartItem struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_event" json:"user_id"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_event" json:"event_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Event    *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (item *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}
