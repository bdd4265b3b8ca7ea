package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event    *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Quantity int       `gorm:"not null" json:"quantity"`
	// TotalAmount is price * quantity captured at booking time; it is never
	// re-derived from the event afterwards.
	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	AttendeeName     string          `gorm:"not null" json:"attendee_name"`
	AttendeeEmail    string          `gorm:"not null" json:"attendee_email"`
	AttendeePhone    string          `json:"attendee_phone"`
	Status           string          `gorm:"not null;default:'confirmed'" json:"status"`
	BookingReference string          `gorm:"unique;not null" json:"booking_reference"`
	QRCode           string          `json:"qr_code,omitempty"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
