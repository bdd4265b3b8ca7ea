package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EventStatusActive    = "active"
	EventStatusInactive  = "inactive"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Venue       string    `gorm:"not null" json:"venue"`
	Address     string    `json:"address"`
	City        string    `gorm:"index" json:"city"`
	Region      string    `json:"region"`
	// EventDate is stored as YYYY-MM-DD and StartTime/EndTime as HH:MM,
	// matching the format clients send and filter on.
	EventDate        string          `gorm:"type:date;not null;index" json:"event_date"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	AvailableTickets int             `gorm:"not null;default:0" json:"available_tickets"`
	Status           string          `gorm:"not null;default:'active';index" json:"status"`
	BannerPath       string          `json:"banner_path,omitempty"`
	OrganizerID      uuid.UUID       `gorm:"type:uuid;index" json:"organizer_id"`
	Organizer        *User           `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
