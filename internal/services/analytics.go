package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/models"
)

type EventSales struct {
	EventID     uuid.UUID       `json:"event_id"`
	Title       string          `json:"title"`
	TicketsSold int64           `json:"tickets_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type AnalyticsSummary struct {
	TotalEvents      int64            `json:"total_events"`
	ActiveEvents     int64            `json:"active_events"`
	TotalBookings    int64            `json:"total_bookings"`
	TicketsSold      int64            `json:"tickets_sold"`
	GrossRevenue     decimal.Decimal  `json:"gross_revenue"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	TopEvents        []EventSales     `json:"top_events"`
}

// AnalyticsService aggregates the admin dashboard numbers. Revenue and
// tickets sold count confirmed bookings only.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &AnalyticsSummary{
		BookingsByStatus: make(map[string]int64),
		GrossRevenue:     decimal.Zero,
	}

	if err := db.Model(&models.Event{}).Count(&summary.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Event{}).
		Where("status = ?", models.EventStatusActive).
		Count(&summary.ActiveEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).Count(&summary.TotalBookings).Error; err != nil {
		return nil, err
	}

	row := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(quantity), 0), COALESCE(SUM(total_amount), 0)").
		Where("status = ?", models.BookingStatusConfirmed).
		Row()
	if err := row.Scan(&summary.TicketsSold, &summary.GrossRevenue); err != nil {
		return nil, err
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusCounts).Error
	if err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		summary.BookingsByStatus[sc.Status] = sc.Count
	}

	err = db.Model(&models.Booking{}).
		Select("bookings.event_id AS event_id, events.title AS title, SUM(bookings.quantity) AS tickets_sold, SUM(bookings.total_amount) AS revenue").
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("bookings.status = ?", models.BookingStatusConfirmed).
		Group("bookings.event_id, events.title").
		Order("tickets_sold DESC").
		Limit(5).
		Scan(&summary.TopEvents).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
