package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/eventzon/eventzon/internal/helpers"
	"github.com/eventzon/eventzon/internal/middleware"
	"github.com/eventzon/eventzon/internal/models"
	"github.com/eventzon/eventzon/internal/services"
)

type EventHandler struct {
	events *services.EventRepository
	log    zerolog.Logger
}

func NewEventHandler(events *services.EventRepository, log zerolog.Logger) *EventHandler {
	return &EventHandler{events: events, log: log}
}

type EventRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description"`
	Category         string          `json:"category" binding:"required"`
	Venue            string          `json:"venue" binding:"required"`
	Address          string          `json:"address"`
	City             string          `json:"city" binding:"required"`
	Region           string          `json:"region"`
	EventDate        string          `json:"event_date" binding:"required,datetime=2006-01-02"`
	StartTime        string          `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime          string          `json:"end_time" binding:"omitempty,datetime=15:04"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	AvailableTickets int             `json:"available_tickets" binding:"min=0"`
	Status           string          `json:"status" binding:"omitempty,oneof=active inactive cancelled"`
}

func (h *EventHandler) List(c *gin.Context) {
	h.list(c, false)
}

// AdminList is the same listing without the status=active restriction.
func (h *EventHandler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *EventHandler) list(c *gin.Context, includeInactive bool) {
	filters := services.EventFilters{
		Search:          c.Query("search"),
		Category:        c.Query("category"),
		City:            c.Query("city"),
		Date:            c.Query("date"),
		Sort:            c.Query("sort"),
		IncludeInactive: includeInactive,
	}
	if filters.Date != "" && !helpers.ValidDate(filters.Date) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date filter. Expected YYYY-MM-DD.")
		return
	}

	events, err := h.events.List(c.Request.Context(), filters)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.events.Get(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	organizerID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.EventStatusActive
	}

	event := models.Event{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Venue:            req.Venue,
		Address:          req.Address,
		City:             req.City,
		Region:           req.Region,
		EventDate:        req.EventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Price:            req.Price,
		AvailableTickets: req.AvailableTickets,
		Status:           status,
		OrganizerID:      organizerID,
	}

	if err := h.events.Create(c.Request.Context(), &event); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	event, err := h.events.Get(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Category = req.Category
	event.Venue = req.Venue
	event.Address = req.Address
	event.City = req.City
	event.Region = req.Region
	event.EventDate = req.EventDate
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Price = req.Price
	event.AvailableTickets = req.AvailableTickets
	if req.Status != "" {
		event.Status = req.Status
	}

	if err := h.events.Update(c.Request.Context(), event); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func (h *EventHandler) Delete(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	if err := h.events.Delete(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EventHandler) UploadBanner(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.events.Get(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	bannerFile, err := c.FormFile("banner")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Banner file is required.")
		return
	}

	bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if event.BannerPath != "" {
		if err := helpers.DeleteFile(event.BannerPath); err != nil {
			h.log.Warn().Err(err).
				Str("path", event.BannerPath).
				Msg("failed to delete old banner")
		}
	}
	event.BannerPath = bannerPath

	if err := h.events.Update(c.Request.Context(), event); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event banner.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Banner uploaded successfully.",
		"banner_path": bannerPath,
	})
}
