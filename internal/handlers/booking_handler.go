package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/eventzon/eventzon/internal/helpers"
	"github.com/eventzon/eventzon/internal/middleware"
	"github.com/eventzon/eventzon/internal/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type CreateBookingRequest struct {
	EventID       uuid.UUID `json:"event_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	AttendeeName  string    `json:"attendee_name" binding:"required"`
	AttendeeEmail string    `json:"attendee_email" binding:"required,email"`
	AttendeePhone string    `json:"attendee_phone"`
}

type CheckoutRequest struct {
	AttendeeName  string `json:"attendee_name" binding:"required"`
	AttendeeEmail string `json:"attendee_email" binding:"required,email"`
	AttendeePhone string `json:"attendee_phone"`
}

func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	bookings, err := h.bookings.ListForUser(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), userID, services.BookingInput{
		EventID:       req.EventID,
		Quantity:      req.Quantity,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		AttendeePhone: req.AttendeePhone,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully.",
		"booking": booking,
	})
}

// Checkout books every cart line in one transaction. A failure on any line
// books nothing and leaves the cart untouched.
func (h *BookingHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	bookings, err := h.bookings.Checkout(c.Request.Context(), userID, services.Attendee{
		Name:  req.AttendeeName,
		Email: req.AttendeeEmail,
		Phone: req.AttendeePhone,
	})
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Cart is empty.")
			return
		}
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Checkout completed successfully.",
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *BookingHandler) QRCode(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	booking, err := h.bookings.GetForUser(c.Request.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving booking.")
		return
	}

	payload := booking.QRCode
	if payload == "" {
		payload = h.bookings.QRPayload(booking)
	}

	image, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", image)
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
	case errors.Is(err, services.ErrEventNotBookable):
		helpers.RespondWithError(c, http.StatusBadRequest, "Event is not open for booking.")
	case errors.Is(err, services.ErrInsufficientTickets):
		helpers.RespondWithError(c, http.StatusConflict, "Not enough tickets available.")
	case errors.Is(err, services.ErrInvalidQuantity):
		helpers.RespondWithError(c, http.StatusBadRequest, "Quantity must be at least 1.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking.")
	}
}
