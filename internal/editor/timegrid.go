package editor

import (
	"fmt"
	"sort"
	"time"

	"ecoheat_dashboard/internal/models"
)

const clockLayout = "15:04"

// TimeGrid is the immutable day × hour catalog the editor works against.
// Hours are kept sorted by start time, ties broken by identifier, so every
// consumer sees the same column order.
type TimeGrid struct {
	days  []models.Day
	hours []models.Hour

	dayByID    map[int]models.Day
	hourByID   map[int]models.Hour
	dayByLabel map[string]int
}

// NewTimeGrid builds a grid from the backend catalogs. The inputs are copied;
// days are ordered by ordinal and hours by start time.
func NewTimeGrid(days []models.Day, hours []models.Hour) *TimeGrid {
	g := &TimeGrid{
		days:       append([]models.Day(nil), days...),
		hours:      append([]models.Hour(nil), hours...),
		dayByID:    make(map[int]models.Day, len(days)),
		hourByID:   make(map[int]models.Hour, len(hours)),
		dayByLabel: make(map[string]int, len(days)),
	}

	sort.SliceStable(g.days, func(i, j int) bool {
		if g.days[i].Ordinal != g.days[j].Ordinal {
			return g.days[i].Ordinal < g.days[j].Ordinal
		}
		return g.days[i].ID < g.days[j].ID
	})
	sort.SliceStable(g.hours, func(i, j int) bool {
		if g.hours[i].StartTime != g.hours[j].StartTime {
			return g.hours[i].StartTime < g.hours[j].StartTime
		}
		return g.hours[i].ID < g.hours[j].ID
	})

	for _, d := range g.days {
		g.dayByID[d.ID] = d
		g.dayByLabel[d.Label] = d.ID
	}
	for _, h := range g.hours {
		g.hourByID[h.ID] = h
	}
	return g
}

// Days returns the days in ordinal order.
func (g *TimeGrid) Days() []models.Day {
	return append([]models.Day(nil), g.days...)
}

// Hours returns the hours sorted by start time.
func (g *TimeGrid) Hours() []models.Hour {
	return append([]models.Hour(nil), g.hours...)
}

// Day looks a day up by id.
func (g *TimeGrid) Day(id int) (models.Day, bool) {
	d, ok := g.dayByID[id]
	return d, ok
}

// Hour looks an hour up by id.
func (g *TimeGrid) Hour(id int) (models.Hour, bool) {
	h, ok := g.hourByID[id]
	return h, ok
}

// DayIDByLabel resolves a day label ("Monday") to its id. The detailed
// schedule response carries only labels, so hydration goes through here.
func (g *TimeGrid) DayIDByLabel(label string) (int, bool) {
	id, ok := g.dayByLabel[label]
	return id, ok
}

// AddHour inserts a freshly created hour, keeping sort order. Overlap against
// existing hours is not checked here; the backend owns that decision.
func (g *TimeGrid) AddHour(h models.Hour) {
	g.hours = append(g.hours, h)
	sort.SliceStable(g.hours, func(i, j int) bool {
		if g.hours[i].StartTime != g.hours[j].StartTime {
			return g.hours[i].StartTime < g.hours[j].StartTime
		}
		return g.hours[i].ID < g.hours[j].ID
	})
	g.hourByID[h.ID] = h
}

// ValidateHourInterval checks that start and end are well-formed HH:MM clock
// values with start < end. It deliberately does not check overlap with other
// hours (server-authoritative).
func ValidateHourInterval(start, end string) error {
	st, err := time.Parse(clockLayout, start)
	if err != nil {
		return models.NewValidationError("start_time", fmt.Sprintf("%q is not a valid HH:MM time", start))
	}
	et, err := time.Parse(clockLayout, end)
	if err != nil {
		return models.NewValidationError("end_time", fmt.Sprintf("%q is not a valid HH:MM time", end))
	}
	if !st.Before(et) {
		return models.NewValidationError("end_time", "interval start must be before its end")
	}
	return nil
}
