package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/dto"
	"github.com/eventzon/eventzon/internal/models"
)

// Publisher delivers booking confirmation messages to the notification
// pipeline. Publishing is best effort; the booking service never rolls a
// committed booking back because of a publish failure.
type Publisher interface {
	Publish(body []byte) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish([]byte) error { return nil }

type BookingInput struct {
	EventID       uuid.UUID
	Quantity      int
	AttendeeName  string
	AttendeeEmail string
	AttendeePhone string
}

type Attendee struct {
	Name  string
	Email string
	Phone string
}

// BookingOptions carries deployment choices. DefaultStatus resolves the
// product ambiguity between booking-means-paid (confirmed) and
// booking-awaits-payment (pending).
type BookingOptions struct {
	DefaultStatus string
	QRSecret      string
}

type BookingService struct {
	db            *gorm.DB
	publisher     Publisher
	log           zerolog.Logger
	defaultStatus string
	qrSecret      string
}

func NewBookingService(db *gorm.DB, publisher Publisher, log zerolog.Logger, opts BookingOptions) *BookingService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	status := opts.DefaultStatus
	if status != models.BookingStatusPending {
		status = models.BookingStatusConfirmed
	}
	return &BookingService{
		db:            db,
		publisher:     publisher,
		log:           log,
		defaultStatus: status,
		qrSecret:      opts.QRSecret,
	}
}

// Create books quantity tickets for a single event. The availability check
// and the decrement are one conditional UPDATE inside the same transaction as
// the booking insert, so two competing requests for the last ticket cannot
// both succeed.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, input BookingInput) (*models.Booking, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var booking *models.Booking
	var event models.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, e, err := s.bookLine(tx, userID, input)
		if err != nil {
			return err
		}
		booking, event = b, *e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, booking, &event)
	return booking, nil
}

// Checkout converts every cart line into a booking and empties the cart, all
// in one transaction. If any line cannot be fulfilled, nothing is booked and
// the cart is left intact.
func (s *BookingService) Checkout(ctx context.Context, userID uuid.UUID, attendee Attendee) ([]models.Booking, error) {
	type bookedLine struct {
		booking *models.Booking
		event   models.Event
	}
	var lines []bookedLine

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines = lines[:0]

		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		for _, item := range items {
			b, e, err := s.bookLine(tx, userID, BookingInput{
				EventID:       item.EventID,
				Quantity:      item.Quantity,
				AttendeeName:  attendee.Name,
				AttendeeEmail: attendee.Email,
				AttendeePhone: attendee.Phone,
			})
			if err != nil {
				return err
			}
			lines = append(lines, bookedLine{booking: b, event: *e})
		}

		// Hard delete so the unique (user, event) index frees up for re-adds.
		return tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(lines))
	for i := range lines {
		s.afterCommit(ctx, lines[i].booking, &lines[i].event)
		bookings = append(bookings, *lines[i].booking)
	}
	return bookings, nil
}

func (s *BookingService) bookLine(tx *gorm.DB, userID uuid.UUID, input BookingInput) (*models.Booking, *models.Event, error) {
	var event models.Event
	if err := tx.Where("id = ?", input.EventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	if event.Status != models.EventStatusActive {
		return nil, nil, ErrEventNotBookable
	}

	result := tx.Model(&models.Event{}).
		Where("id = ? AND available_tickets >= ?", input.EventID, input.Quantity).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", input.Quantity))
	if result.Error != nil {
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil, ErrInsufficientTickets
	}
	event.AvailableTickets -= input.Quantity

	booking := &models.Booking{
		UserID:           userID,
		EventID:          event.ID,
		Quantity:         input.Quantity,
		TotalAmount:      event.Price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		AttendeeName:     input.AttendeeName,
		AttendeeEmail:    input.AttendeeEmail,
		AttendeePhone:    input.AttendeePhone,
		Status:           s.defaultStatus,
		BookingReference: NewBookingReference(),
	}
	if err := tx.Create(booking).Error; err != nil {
		return nil, nil, err
	}
	return booking, &event, nil
}

// afterCommit runs the best-effort collaborators. Failures here are logged
// and swallowed; the booking stays committed either way.
func (s *BookingService) afterCommit(ctx context.Context, booking *models.Booking, event *models.Event) {
	payload := s.QRPayload(booking)
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		UpdateColumn("qr_code", payload).Error
	if err != nil {
		s.log.Error().Err(err).
			Str("booking_id", booking.ID.String()).
			Msg("failed to store qr payload")
	} else {
		booking.QRCode = payload
	}

	message := dto.BookingConfirmation{
		BookingID:     booking.ID.String(),
		Reference:     booking.BookingReference,
		EventTitle:    event.Title,
		EventDate:     event.EventDate,
		Venue:         event.Venue,
		Quantity:      booking.Quantity,
		TotalAmount:   booking.TotalAmount.StringFixed(2),
		AttendeeName:  booking.AttendeeName,
		AttendeeEmail: booking.AttendeeEmail,
		Status:        booking.Status,
	}
	body, err := json.Marshal(message)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode booking confirmation")
		return
	}
	if err := s.publisher.Publish(body); err != nil {
		s.log.Warn().Err(err).
			Str("reference", booking.BookingReference).
			Msg("booking confirmed but notification publish failed")
	}
}

func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) GetForUser(ctx context.Context, id, userID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// QRPayload renders the signed check-in payload for a booking. It is
// deterministic, so the stored value and the PNG endpoint always agree.
func (s *BookingService) QRPayload(booking *models.Booking) string {
	data := fmt.Sprintf("%s:%s:%s", booking.ID.String(), booking.EventID.String(), booking.BookingReference)
	mac := hmac.New(sha256.New, []byte(s.qrSecret))
	mac.Write([]byte(data))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("booking:%s;event:%s;reference:%s;signature:%s",
		booking.ID.String(), booking.EventID.String(), booking.BookingReference, signature)
}

// NewBookingReference builds a reference from a UTC timestamp and a random
// suffix. The unique column constraint is the real uniqueness guarantee.
func NewBookingReference() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("EVZ-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("EVZ-%s-%s",
		time.Now().UTC().Format("20060102150405"),
		strings.ToUpper(hex.EncodeToString(suffix)))
}
