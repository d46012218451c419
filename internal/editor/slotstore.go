package editor

import (
	"fmt"
	"sort"

	"ecoheat_dashboard/internal/models"
)

// SlotStore mirrors one schedule's persisted slot set as a sparse
// (day, hour) → slot map. It is owned by the active editing session;
// hydration always fully replaces the contents, never merges, so no slot of a
// previously viewed schedule can survive a schedule switch.
type SlotStore struct {
	scheduleID int
	slots      map[models.SlotKey]models.Slot
}

// NewSlotStore returns an empty store bound to no schedule.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[models.SlotKey]models.Slot)}
}

// ScheduleID reports which schedule the store currently mirrors (0 if none).
func (s *SlotStore) ScheduleID() int { return s.scheduleID }

// Get returns the slot at (dayID, hourID), if any.
func (s *SlotStore) Get(dayID, hourID int) (models.Slot, bool) {
	slot, ok := s.slots[models.SlotKey{DayID: dayID, HourID: hourID}]
	return slot, ok
}

// Len returns the number of persisted slots.
func (s *SlotStore) Len() int { return len(s.slots) }

// Slots returns all slots ordered by (day, hour) for deterministic output.
func (s *SlotStore) Slots() []models.Slot {
	out := make([]models.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayID != out[j].DayID {
			return out[i].DayID < out[j].DayID
		}
		return out[i].HourID < out[j].HourID
	})
	return out
}

// Clear drops every entry and detaches the store from its schedule.
func (s *SlotStore) Clear() {
	s.scheduleID = 0
	s.slots = make(map[models.SlotKey]models.Slot)
}

// Replace swaps the full contents for the given schedule's authoritative slot
// set. Later entries win on duplicate keys, matching the backend's
// at-most-one-slot-per-key constraint.
func (s *SlotStore) Replace(scheduleID int, slots []models.Slot) {
	s.scheduleID = scheduleID
	s.slots = make(map[models.SlotKey]models.Slot, len(slots))
	for _, slot := range slots {
		s.slots[slot.Key()] = slot
	}
}

// Hydrate flattens a detailed-schedule response into the store. The response
// groups slots under day labels, so the grid resolves labels back to ids.
func (s *SlotStore) Hydrate(detail models.ScheduleDetail, grid *TimeGrid) error {
	flat := make([]models.Slot, 0, len(detail.ScheduleTimes)*4)
	for _, dayGroup := range detail.ScheduleTimes {
		dayID, ok := grid.DayIDByLabel(dayGroup.Day)
		if !ok {
			return fmt.Errorf("schedule %d references unknown day %q", detail.ID, dayGroup.Day)
		}
		for _, ds := range dayGroup.Hours {
			flat = append(flat, models.Slot{
				DayID:         dayID,
				HourID:        ds.HourID,
				Temperature:   ds.Temperature,
				HeatingActive: ds.HeatingActive,
				FanActive:     ds.FanActive,
			})
		}
	}
	s.Replace(detail.ID, flat)
	return nil
}
