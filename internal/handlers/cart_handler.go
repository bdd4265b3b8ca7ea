package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventzon/eventzon/internal/helpers"
	"github.com/eventzon/eventzon/internal/middleware"
	"github.com/eventzon/eventzon/internal/services"
)

type CartHandler struct {
	cart *services.CartStore
}

func NewCartHandler(cart *services.CartStore) *CartHandler {
	return &CartHandler{cart: cart}
}

type AddCartItemRequest struct {
	EventID  uuid.UUID `json:"event_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	items, err := h.cart.List(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cart.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *CartHandler) Add(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	item, err := h.cart.Add(c.Request.Context(), userID, req.EventID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, services.ErrEventNotBookable):
			helpers.RespondWithError(c, http.StatusBadRequest, "Event is not open for booking.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add to cart.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Added to cart.",
		"item":    item,
	})
}

func (h *CartHandler) Update(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid cart item ID.")
		return
	}

	// Quantities below 1 are rejected here, before the store is involved.
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	item, err := h.cart.Update(c.Request.Context(), itemID, userID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Cart item not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update cart item.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated.",
		"item":    item,
	})
}

func (h *CartHandler) Remove(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid cart item ID.")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	if err := h.cart.Remove(c.Request.Context(), itemID, userID); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Cart item not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove cart item.")
		return
	}

	c.Status(http.StatusNoContent)
}
