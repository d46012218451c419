package models

// Day is one entry of the fixed weekly catalog. The set is loaded once from the
// backend and never changes at runtime.
type Day struct {
	ID      int    `json:"id"`
	Label   string `json:"day"` // e.g. "Monday"
	Ordinal int    `json:"ordinal"`
}

// Hour is a half-open [StartTime, EndTime) interval with HH:MM granularity.
type Hour struct {
	ID        int    `json:"id"`
	StartTime string `json:"start_time"` // "08:00"
	EndTime   string `json:"end_time"`   // "09:00"
}

// Schedule is a named weekly program owning zero or more slots.
type Schedule struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SlotKey is the composite key of a slot within one schedule.
type SlotKey struct {
	DayID  int
	HourID int
}

// Slot holds the desired settings for one (day, hour) cell. Absence of a slot
// means the devices follow their default/off state for that hour.
type Slot struct {
	DayID         int     `json:"day_id"`
	HourID        int     `json:"hour_id"`
	Temperature   float64 `json:"temperature"`
	HeatingActive bool    `json:"is_heating_active"`
	FanActive     bool    `json:"is_fan_active"`
}

// Key returns the slot's composite key.
func (s Slot) Key() SlotKey {
	return SlotKey{DayID: s.DayID, HourID: s.HourID}
}

// DetailSlot is one slot entry of the detailed-schedule response. The backend
// embeds the hour interval and keeps the day only as a group label.
type DetailSlot struct {
	ID            int     `json:"id"`
	HourID        int     `json:"hour_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Temperature   float64 `json:"temperature"`
	HeatingActive bool    `json:"is_heating_active"`
	FanActive     bool    `json:"is_fan_active"`
}

// DetailDay groups the slots of one weekday in the detailed-schedule response.
type DetailDay struct {
	Day   string       `json:"day"`
	Hours []DetailSlot `json:"hours"`
}

// ScheduleDetail is the /schedules/{id}/detailed/ payload: the schedule plus
// its slots grouped per day and its room assignments.
type ScheduleDetail struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	ScheduleTimes   []DetailDay      `json:"schedule_times"`
	RoomAssignments []RoomAssignment `json:"room_assignments,omitempty"`
}

// Room is a heated/ventilated room known to the backend.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RoomAssignment links a room to its single active schedule.
type RoomAssignment struct {
	ID           int    `json:"id"`
	RoomID       int    `json:"room_id"`
	ScheduleID   int    `json:"schedule_id"`
	RoomName     string `json:"room_name,omitempty"`
	ScheduleName string `json:"schedule_name,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// Patch is the diff an edit session produces: slots to create or update, and
// keys whose persisted slots must go away.
type Patch struct {
	Upserts  []Slot    `json:"upserts"`
	Removals []SlotKey `json:"removals"`
}

// Size returns the number of pairs the patch touches.
func (p Patch) Size() int {
	return len(p.Upserts) + len(p.Removals)
}
