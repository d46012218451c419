package editor

import (
	"fmt"
	"sort"

	"ecoheat_dashboard/internal/models"
)

// DayPreset is a bulk day-selection rule.
type DayPreset int

const (
	PresetAllWeek DayPreset = iota
	PresetWeekday
	PresetWeekend
	PresetCustom
)

var presetNames = map[DayPreset]string{
	PresetAllWeek: "all-week",
	PresetWeekday: "weekday",
	PresetWeekend: "weekend",
	PresetCustom:  "custom",
}

func (p DayPreset) String() string {
	if s, ok := presetNames[p]; ok {
		return s
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset maps a wire name to its preset.
func ParsePreset(s string) (DayPreset, error) {
	for p, name := range presetNames {
		if name == s {
			return p, nil
		}
	}
	return 0, models.NewValidationError("preset", fmt.Sprintf("unknown day preset %q", s))
}

// Fixed weekday/weekend partition, matched by exact day label. Labels outside
// the partition (customized day catalogs) are reachable only via the custom
// preset.
var weekdayLabels = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true, "Friday": true,
}

var weekendLabels = map[string]bool{
	"Saturday": true, "Sunday": true,
}

// Slot settings applied to newly toggled-on cells. The temperature default
// mirrors the backend's.
const (
	DefaultTemperature = 24.0
	MinTemperature     = 5.0
	MaxTemperature     = 35.0
)

// SlotDefaults are the field values stamped onto cells toggled on after the
// defaults were set. Changing them never rewrites already-selected cells.
type SlotDefaults struct {
	Temperature   float64 `json:"temperature"`
	HeatingActive bool    `json:"is_heating_active"`
	FanActive     bool    `json:"is_fan_active"`
}

// PendingEdit is one touched (day, hour) pair: its slot fields plus whether
// the pair is currently included. Deselecting keeps the fields so an
// accidental toggle-off/toggle-on round trip loses nothing.
type PendingEdit struct {
	Slot     models.Slot
	Selected bool
}

// SelectionModel tracks which days are active for bulk editing and which
// cells the user has toggled during the current edit session. It is a pure
// in-memory overlay: discarded on cancel, flushed into a patch on save.
type SelectionModel struct {
	grid       *TimeGrid
	preset     DayPreset
	activeDays map[int]bool
	pending    map[models.SlotKey]*PendingEdit
	defaults   SlotDefaults
}

// NewSelectionModel starts a session with the all-week preset active.
func NewSelectionModel(grid *TimeGrid) *SelectionModel {
	m := &SelectionModel{
		grid:    grid,
		pending: make(map[models.SlotKey]*PendingEdit),
		defaults: SlotDefaults{
			Temperature:   DefaultTemperature,
			HeatingActive: true,
			FanActive:     false,
		},
	}
	m.SetDayPreset(PresetAllWeek)
	return m
}

// Preset returns the current day preset.
func (m *SelectionModel) Preset() DayPreset { return m.preset }

// Defaults returns the settings for subsequently toggled-on cells.
func (m *SelectionModel) Defaults() SlotDefaults { return m.defaults }

// SetDayPreset replaces the active-day set according to the preset's fixed
// label partition. Custom clears the set for manual toggling.
func (m *SelectionModel) SetDayPreset(p DayPreset) {
	m.preset = p
	m.activeDays = make(map[int]bool)
	if p == PresetCustom {
		return
	}
	for _, d := range m.grid.Days() {
		switch p {
		case PresetAllWeek:
			m.activeDays[d.ID] = true
		case PresetWeekday:
			if weekdayLabels[d.Label] {
				m.activeDays[d.ID] = true
			}
		case PresetWeekend:
			if weekendLabels[d.Label] {
				m.activeDays[d.ID] = true
			}
		}
	}
}

// ToggleDay flips a day's membership. It only has an effect under the custom
// preset; preset day sets are fixed by definition.
func (m *SelectionModel) ToggleDay(dayID int) bool {
	if m.preset != PresetCustom {
		return false
	}
	if _, ok := m.grid.Day(dayID); !ok {
		return false
	}
	if m.activeDays[dayID] {
		delete(m.activeDays, dayID)
	} else {
		m.activeDays[dayID] = true
	}
	return true
}

// ActiveDays returns the active day ids in ascending order.
func (m *SelectionModel) ActiveDays() []int {
	out := make([]int, 0, len(m.activeDays))
	for id := range m.activeDays {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// DayActive reports whether a day is in the active set.
func (m *SelectionModel) DayActive(dayID int) bool { return m.activeDays[dayID] }

// ToggleCell applies one hour toggle to every currently active day at once.
// Schedules are defined by day-group + time-band, so a single click writes or
// removes the pending edit for that hour across the whole active-day set.
//
// Per (day, hour): an untouched empty cell becomes a selected pending slot
// with the current defaults; an untouched persisted slot becomes deselected
// (marked for removal); an already-touched cell just flips its included flag,
// keeping its field values. Returns the number of pairs affected.
func (m *SelectionModel) ToggleCell(store *SlotStore, hourID int) (int, error) {
	if _, ok := m.grid.Hour(hourID); !ok {
		return 0, models.NewValidationError("hour_id", fmt.Sprintf("unknown hour %d", hourID))
	}
	days := m.ActiveDays()
	for _, dayID := range days {
		key := models.SlotKey{DayID: dayID, HourID: hourID}
		if p, ok := m.pending[key]; ok {
			p.Selected = !p.Selected
			continue
		}
		if persisted, ok := store.Get(dayID, hourID); ok {
			// First touch of a persisted slot: deselect it, keep its fields.
			m.pending[key] = &PendingEdit{Slot: persisted, Selected: false}
			continue
		}
		m.pending[key] = &PendingEdit{
			Slot: models.Slot{
				DayID:         dayID,
				HourID:        hourID,
				Temperature:   m.defaults.Temperature,
				HeatingActive: m.defaults.HeatingActive,
				FanActive:     m.defaults.FanActive,
			},
			Selected: true,
		}
	}
	return len(days), nil
}

// SetTemperature updates the default temperature for subsequently toggled-on
// cells. Already-selected cells keep their values.
func (m *SelectionModel) SetTemperature(v float64) error {
	if v < MinTemperature || v > MaxTemperature {
		return models.NewValidationError("temperature",
			fmt.Sprintf("%.1f is outside the allowed range %.1f–%.1f", v, MinTemperature, MaxTemperature))
	}
	m.defaults.Temperature = v
	return nil
}

// SetHeating updates the default heating flag for subsequently toggled-on cells.
func (m *SelectionModel) SetHeating(on bool) { m.defaults.HeatingActive = on }

// SetFan updates the default fan flag for subsequently toggled-on cells.
func (m *SelectionModel) SetFan(on bool) { m.defaults.FanActive = on }

// Pending returns a copy of the touched pairs.
func (m *SelectionModel) Pending() map[models.SlotKey]PendingEdit {
	out := make(map[models.SlotKey]PendingEdit, len(m.pending))
	for k, p := range m.pending {
		out[k] = *p
	}
	return out
}

// PendingCount returns how many (day, hour) pairs the session has touched.
func (m *SelectionModel) PendingCount() int { return len(m.pending) }
