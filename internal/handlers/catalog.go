package handlers

import (
	"net/http"

	"ecoheat_dashboard/internal/editor"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating an hour interval.
type hourRequest struct {
	StartTime string `json:"start_time" binding:"required"` // "08:00"
	EndTime   string `json:"end_time" binding:"required"`   // "09:00"
}

// CreateHourRequest is an exported model for Swagger docs of the hour payload.
type CreateHourRequest struct {
	// Interval start, HH:MM
	StartTime string `json:"start_time" example:"08:00"`
	// Interval end, HH:MM; must be after start
	EndTime string `json:"end_time" example:"09:00"`
}

// @Summary      List days
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, days"
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/days [get]
func (h *Handler) listDays(c *gin.Context) {
	grid, err := h.gridOrLoad(c)
	if err != nil {
		h.logAndJSONError(c, "days_list_failed", err)
		return
	}
	days := grid.Days()
	c.JSON(http.StatusOK, gin.H{"count": len(days), "days": days})
}

// @Summary      List hour intervals
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, hours"
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/hours [get]
func (h *Handler) listHours(c *gin.Context) {
	grid, err := h.gridOrLoad(c)
	if err != nil {
		h.logAndJSONError(c, "hours_list_failed", err)
		return
	}
	hours := grid.Hours()
	c.JSON(http.StatusOK, gin.H{"count": len(hours), "hours": hours})
}

// @Summary      Create hour interval
// @Description  Start must precede end; overlap with existing intervals is judged by the backend.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  CreateHourRequest  true  "Hour payload"
// @Success      201   {object}  models.Hour
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/hours [post]
func (h *Handler) createHour(c *gin.Context) {
	var req hourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	hour, err := h.services.TimeGrid.CreateHour(c.Request.Context(), req.StartTime, req.EndTime)
	if err != nil {
		h.logAndJSONError(c, "hour_create_failed", err, "start", req.StartTime, "end", req.EndTime)
		return
	}
	c.JSON(http.StatusCreated, hour)
}

// @Summary      List rooms
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/rooms [get]
func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.services.Rooms.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "rooms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rooms), "rooms": rooms})
}

// gridOrLoad returns the cached grid, fetching the catalogs on first use.
func (h *Handler) gridOrLoad(c *gin.Context) (*editor.TimeGrid, error) {
	if grid := h.services.TimeGrid.Grid(); grid != nil {
		return grid, nil
	}
	return h.services.TimeGrid.Load(c.Request.Context())
}
