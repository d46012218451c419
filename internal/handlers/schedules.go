package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Request DTO shared by schedule create and update.
type scheduleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// ScheduleRequest is an exported model for Swagger docs of the schedule payload.
type ScheduleRequest struct {
	Name        string `json:"name" example:"Work Schedule"`
	Description string `json:"description,omitempty" example:"Weekday heating for the office"`
}

// Request DTO for assigning a schedule to a room.
type assignRequest struct {
	RoomID int `json:"room_id" binding:"required"`
}

// AssignRequest is an exported model for Swagger docs of the assign payload.
type AssignRequest struct {
	RoomID int `json:"room_id" example:"3"`
}

// pathID parses the numeric :id style path parameter, responding 400 itself
// on garbage.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// @Summary      List schedules
// @Description  Refreshes the catalog; with no selection yet, the first schedule becomes active.
// @Tags         schedules
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, schedules, editor"
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/schedules [get]
func (h *Handler) listSchedules(c *gin.Context) {
	scheds, err := h.services.Schedules.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "schedules_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(scheds),
		"schedules": scheds,
		"editor":    h.services.Schedules.Snapshot(),
	})
}

// @Summary      Create schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body  ScheduleRequest  true  "Schedule payload"
// @Success      201   {object}  models.Schedule
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/schedules [post]
func (h *Handler) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	created, err := h.services.Schedules.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.logAndJSONError(c, "schedule_create_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      Update schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "Schedule id"
// @Param        body  body  ScheduleRequest  true  "Schedule payload"
// @Success      200   {object}  models.Schedule
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/schedules/{id} [put]
func (h *Handler) updateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	updated, err := h.services.Schedules.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		h.logAndJSONError(c, "schedule_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete schedule
// @Description  Slots cascade on the backend. Deleting the active schedule selects the first remaining one.
// @Tags         schedules
// @Produce      json
// @Param        id  path  int  true  "Schedule id"
// @Success      200  {object}  map[string]interface{}  "status, editor"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/schedules/{id} [delete]
func (h *Handler) deleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	snap, err := h.services.Schedules.Delete(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, "schedule_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "editor": snap})
}

// @Summary      Select schedule
// @Description  Makes a schedule active and hydrates its slots. With pending edits, pass discard=true to confirm losing them; otherwise 409.
// @Tags         schedules
// @Produce      json
// @Param        id       path   int     true   "Schedule id"
// @Param        discard  query  bool    false  "Abandon pending edits"
// @Success      200  {object}  map[string]interface{}  "status, editor"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/schedules/{id}/select [post]
func (h *Handler) selectSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	discard := c.Query("discard") == "true"
	snap, err := h.services.Schedules.Select(c.Request.Context(), id, discard)
	if err != nil {
		h.logAndJSONError(c, "schedule_select_failed", err, "id", id, "discard", discard)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSelected, "editor": snap})
}

// @Summary      Assign schedule to room
// @Description  Links the schedule to a room; the room's previous active assignment is superseded by the backend.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Schedule id"
// @Param        body  body  AssignRequest  true  "Assignment payload"
// @Success      200   {object}  map[string]interface{}  "status, assignment"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/schedules/{id}/assign [post]
func (h *Handler) assignSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	assignment, err := h.services.Schedules.AssignToRoom(c.Request.Context(), id, req.RoomID)
	if err != nil {
		h.logAndJSONError(c, "schedule_assign_failed", err, "id", id, "room_id", req.RoomID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusAssigned, "assignment": assignment})
}
