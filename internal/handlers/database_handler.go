package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventzon/eventzon/internal/helpers"
	"github.com/eventzon/eventzon/internal/services"
)

// DatabaseHandler exposes the admin table browser and the read-only SQL
// console.
type DatabaseHandler struct {
	console *services.SQLConsole
}

func NewDatabaseHandler(console *services.SQLConsole) *DatabaseHandler {
	return &DatabaseHandler{console: console}
}

type ExecuteQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *DatabaseHandler) Tables(c *gin.Context) {
	tables, err := h.console.Tables(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error listing tables.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (h *DatabaseHandler) BrowseTable(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := helpers.StringToInt(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = parsed
	}

	result, err := h.console.BrowseTable(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Table not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error browsing table.")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DatabaseHandler) Execute(c *gin.Context) {
	var req ExecuteQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, err)
		return
	}

	result, err := h.console.Execute(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, services.ErrQueryNotAllowed) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Only single read statements are allowed.")
			return
		}
		helpers.RespondWithError(c, http.StatusBadRequest, "Query failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
