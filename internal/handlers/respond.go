package handlers

import (
	"errors"
	"net/http"

	"ecoheat_dashboard/internal/models"
	"ecoheat_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusSelected = "selected"
	statusSaved    = "saved"
	statusDeleted  = "deleted"
	statusAssigned = "assigned"

	errInvalidBodyPref = "invalid body: "
)

// statusFromError maps service and upstream errors onto HTTP codes: input
// problems are 400, rejected credentials 401, state conflicts 409, backend
// trouble 502, a not-yet-loaded grid 503.
func statusFromError(err error) int {
	var ve *models.ValidationError
	var ce *models.ConflictError
	var fe *models.FetchError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &ce),
		errors.Is(err, service.ErrPendingEdits),
		errors.Is(err, service.ErrSaveInFlight),
		errors.Is(err, service.ErrAlreadyEditing),
		errors.Is(err, service.ErrNotEditing),
		errors.Is(err, service.ErrNoActiveSchedule):
		return http.StatusConflict
	case errors.As(err, &fe):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrGridNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
