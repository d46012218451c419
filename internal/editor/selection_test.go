package editor

import (
	"testing"

	"ecoheat_dashboard/internal/models"
)

func weekGrid() *TimeGrid {
	labels := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	days := make([]models.Day, 0, len(labels))
	for i, l := range labels {
		days = append(days, models.Day{ID: i + 1, Label: l, Ordinal: i})
	}
	hours := []models.Hour{
		{ID: 1, StartTime: "08:00", EndTime: "09:00"},
		{ID: 2, StartTime: "18:00", EndTime: "21:00"},
	}
	return NewTimeGrid(days, hours)
}

func TestSetDayPreset_Partitions(t *testing.T) {
	cases := []struct {
		name   string
		preset DayPreset
		want   []int
	}{
		{"all_week", PresetAllWeek, []int{1, 2, 3, 4, 5, 6, 7}},
		{"weekday", PresetWeekday, []int{1, 2, 3, 4, 5}},
		{"weekend", PresetWeekend, []int{6, 7}},
		{"custom_starts_empty", PresetCustom, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewSelectionModel(weekGrid())
			m.SetDayPreset(tc.preset)
			got := m.ActiveDays()
			if len(got) != len(tc.want) {
				t.Fatalf("active days = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("active days = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSetDayPreset_UnmatchedLabelsExcluded(t *testing.T) {
	days := []models.Day{
		{ID: 1, Label: "Monday", Ordinal: 0},
		{ID: 2, Label: "Laundry day", Ordinal: 1},
		{ID: 3, Label: "Sunday", Ordinal: 2},
	}
	grid := NewTimeGrid(days, []models.Hour{{ID: 1, StartTime: "08:00", EndTime: "09:00"}})
	m := NewSelectionModel(grid)

	m.SetDayPreset(PresetWeekday)
	if got := m.ActiveDays(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("weekday preset selected %v, want [1]", got)
	}
	m.SetDayPreset(PresetWeekend)
	if got := m.ActiveDays(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("weekend preset selected %v, want [3]", got)
	}

	// Only custom can reach the unmatched label.
	m.SetDayPreset(PresetCustom)
	if !m.ToggleDay(2) {
		t.Fatalf("expected ToggleDay to work under custom preset")
	}
	if !m.DayActive(2) {
		t.Fatalf("expected day 2 active after toggle")
	}
}

func TestToggleDay_NoEffectOutsideCustom(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	m.SetDayPreset(PresetWeekday)
	if m.ToggleDay(6) {
		t.Fatalf("ToggleDay must be a no-op outside the custom preset")
	}
	if m.DayActive(6) {
		t.Fatalf("weekend day must stay inactive under weekday preset")
	}
}

func TestToggleCell_AffectsExactlyActiveDays(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	store := NewSlotStore()
	m.SetDayPreset(PresetWeekday)

	n, err := m.ToggleCell(store, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 affected pairs, got %d", n)
	}
	if m.PendingCount() != 5 {
		t.Fatalf("expected 5 pending pairs, got %d", m.PendingCount())
	}
	for _, dayID := range []int{1, 2, 3, 4, 5} {
		p, ok := m.Pending()[models.SlotKey{DayID: dayID, HourID: 1}]
		if !ok || !p.Selected {
			t.Fatalf("expected day %d hour 1 selected", dayID)
		}
	}
	if _, ok := m.Pending()[models.SlotKey{DayID: 6, HourID: 1}]; ok {
		t.Fatalf("inactive day must not be touched")
	}
}

func TestToggleCell_UnknownHour(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	if _, err := m.ToggleCell(NewSlotStore(), 99); err == nil {
		t.Fatalf("expected validation error for unknown hour")
	}
}

func TestToggleCell_DeselectReselectKeepsFieldValues(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	store := NewSlotStore()
	m.SetDayPreset(PresetCustom)
	m.ToggleDay(3)

	if err := m.SetTemperature(21.5); err != nil {
		t.Fatalf("set temperature: %v", err)
	}
	m.SetFan(true)
	if _, err := m.ToggleCell(store, 2); err != nil {
		t.Fatalf("toggle on: %v", err)
	}

	// Change defaults, then toggle the same cell off and on again.
	if err := m.SetTemperature(30); err != nil {
		t.Fatalf("set temperature: %v", err)
	}
	m.SetFan(false)
	if _, err := m.ToggleCell(store, 2); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if _, err := m.ToggleCell(store, 2); err != nil {
		t.Fatalf("toggle back on: %v", err)
	}

	p := m.Pending()[models.SlotKey{DayID: 3, HourID: 2}]
	if !p.Selected {
		t.Fatalf("expected cell selected after round trip")
	}
	if p.Slot.Temperature != 21.5 || !p.Slot.FanActive {
		t.Fatalf("round trip lost field values: %+v", p.Slot)
	}
}

func TestToggleCell_PersistedSlotFirstToggleDeselects(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	store := NewSlotStore()
	store.Replace(9, []models.Slot{
		{DayID: 1, HourID: 1, Temperature: 19, HeatingActive: true},
	})
	m.SetDayPreset(PresetCustom)
	m.ToggleDay(1)

	if _, err := m.ToggleCell(store, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	p := m.Pending()[models.SlotKey{DayID: 1, HourID: 1}]
	if p.Selected {
		t.Fatalf("first toggle of a persisted slot must deselect it")
	}
	if p.Slot.Temperature != 19 {
		t.Fatalf("persisted fields must be carried into the pending edit, got %+v", p.Slot)
	}
}

func TestSetters_ApplyToSubsequentTogglesOnly(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	store := NewSlotStore()
	m.SetDayPreset(PresetCustom)
	m.ToggleDay(1)

	if _, err := m.ToggleCell(store, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := m.SetTemperature(18); err != nil {
		t.Fatalf("set temperature: %v", err)
	}
	m.SetHeating(false)
	if _, err := m.ToggleCell(store, 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	first := m.Pending()[models.SlotKey{DayID: 1, HourID: 1}]
	second := m.Pending()[models.SlotKey{DayID: 1, HourID: 2}]
	if first.Slot.Temperature != DefaultTemperature || !first.Slot.HeatingActive {
		t.Fatalf("setter retroactively rewrote an already-selected cell: %+v", first.Slot)
	}
	if second.Slot.Temperature != 18 || second.Slot.HeatingActive {
		t.Fatalf("new defaults not applied to subsequent toggle: %+v", second.Slot)
	}
}

func TestSetTemperature_Bounds(t *testing.T) {
	m := NewSelectionModel(weekGrid())
	if err := m.SetTemperature(2); err == nil {
		t.Fatalf("expected validation error below range")
	}
	if err := m.SetTemperature(40); err == nil {
		t.Fatalf("expected validation error above range")
	}
	var verr *models.ValidationError
	err := m.SetTemperature(40)
	if !asValidation(err, &verr) {
		t.Fatalf("expected *models.ValidationError, got %T", err)
	}
}

func asValidation(err error, target **models.ValidationError) bool {
	v, ok := err.(*models.ValidationError)
	if ok {
		*target = v
	}
	return ok
}
