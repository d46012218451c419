package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request DTO for switching the day preset.
type presetRequest struct {
	Preset string `json:"preset" binding:"required"` // all-week | weekday | weekend | custom
}

// PresetRequest is an exported model for Swagger docs of the preset payload.
type PresetRequest struct {
	// Preset to activate. Allowed: all-week, weekday, weekend, custom
	Preset string `json:"preset" example:"weekday"`
}

// Request DTO for editing defaults; nil fields are left untouched.
type defaultsRequest struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	HeatingActive *bool    `json:"is_heating_active,omitempty"`
	FanActive     *bool    `json:"is_fan_active,omitempty"`
}

// DefaultsRequest is an exported model for Swagger docs of the defaults payload.
type DefaultsRequest struct {
	// Target temperature for subsequently toggled-on cells, 5.0–35.0 °C
	Temperature   *float64 `json:"temperature,omitempty" example:"21.5"`
	HeatingActive *bool    `json:"is_heating_active,omitempty" example:"true"`
	FanActive     *bool    `json:"is_fan_active,omitempty" example:"false"`
}

// @Summary      Editor state
// @Tags         editor
// @Produce      json
// @Success      200  {object}  service.Snapshot
// @Router       /api/v1/editor [get]
func (h *Handler) editorSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Schedules.Snapshot())
}

// @Summary      Begin edit session
// @Tags         editor
// @Produce      json
// @Success      200  {object}  service.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/begin [post]
func (h *Handler) beginEdit(c *gin.Context) {
	snap, err := h.services.Schedules.BeginEdit()
	if err != nil {
		h.logAndJSONError(c, "editor_begin_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Set day preset
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  PresetRequest  true  "Preset payload"
// @Success      200   {object}  service.Snapshot
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/editor/preset [post]
func (h *Handler) setPreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Schedules.SetDayPreset(req.Preset)
	if err != nil {
		h.logAndJSONError(c, "editor_preset_failed", err, "preset", req.Preset)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Toggle day membership
// @Description  Only effective under the custom preset; preset day sets are fixed.
// @Tags         editor
// @Produce      json
// @Param        dayID  path  int  true  "Day id"
// @Success      200  {object}  service.Snapshot
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/days/{dayID} [post]
func (h *Handler) toggleDay(c *gin.Context) {
	dayID, ok := pathID(c, "dayID")
	if !ok {
		return
	}
	snap, err := h.services.Schedules.ToggleDay(dayID)
	if err != nil {
		h.logAndJSONError(c, "editor_toggle_day_failed", err, "day_id", dayID)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Toggle hour cell
// @Description  Applies one hour toggle across every active day and reports how many (day, hour) pairs changed.
// @Tags         editor
// @Produce      json
// @Param        hourID  path  int  true  "Hour id"
// @Success      200  {object}  map[string]interface{}  "affected, editor"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/cells/{hourID} [post]
func (h *Handler) toggleCell(c *gin.Context) {
	hourID, ok := pathID(c, "hourID")
	if !ok {
		return
	}
	affected, snap, err := h.services.Schedules.ToggleCell(hourID)
	if err != nil {
		h.logAndJSONError(c, "editor_toggle_cell_failed", err, "hour_id", hourID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected, "editor": snap})
}

// @Summary      Set slot defaults
// @Description  Changes the values stamped onto subsequently toggled-on cells; already-selected cells keep theirs.
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        body  body  DefaultsRequest  true  "Defaults payload"
// @Success      200   {object}  service.Snapshot
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/editor/defaults [post]
func (h *Handler) setDefaults(c *gin.Context) {
	var req defaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	snap, err := h.services.Schedules.SetDefaults(req.Temperature, req.HeatingActive, req.FanActive)
	if err != nil {
		h.logAndJSONError(c, "editor_defaults_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Save edit session
// @Description  Sends the full replacement slot list and re-seeds the editor from the response. A second save while one is in flight is rejected with 409.
// @Tags         editor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, patch, editor"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/editor/save [post]
func (h *Handler) saveEdits(c *gin.Context) {
	patch, snap, err := h.services.Schedules.Save(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "editor_save_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSaved, "patch": patch, "editor": snap})
}

// @Summary      Cancel edit session
// @Tags         editor
// @Produce      json
// @Success      200  {object}  service.Snapshot
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/editor/cancel [post]
func (h *Handler) cancelEdits(c *gin.Context) {
	snap, err := h.services.Schedules.Cancel()
	if err != nil {
		h.logAndJSONError(c, "editor_cancel_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
