package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/internal/helpers"
	"github.com/eventzon/eventzon/internal/models"
	"github.com/eventzon/eventzon/internal/services"
)

type AdminHandler struct {
	db        *gorm.DB
	analytics *services.AnalyticsService
}

func NewAdminHandler(db *gorm.DB, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{db: db, analytics: analytics}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	var bookings []models.Booking
	err := h.db.WithContext(c.Request.Context()).
		Preload("Event").
		Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	var booking models.Booking
	db := h.db.WithContext(c.Request.Context())
	if err := db.Where("id = ?", bookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding booking.")
		return
	}

	booking.Status = req.Status
	if err := db.Save(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated.",
		"booking": booking,
	})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Where("id = ?", bookingID).
		Delete(&models.Booking{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing analytics.")
		return
	}

	c.JSON(http.StatusOK, summary)
}
