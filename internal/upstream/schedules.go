package upstream

import (
	"context"
	"fmt"
	"net/http"

	"ecoheat_dashboard/internal/models"
)

// Days lists the weekday catalog.
func (c *Client) Days(ctx context.Context) ([]models.Day, error) {
	var out []models.Day
	if err := c.get(ctx, "days/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Hours lists the hour-interval catalog. Callers sort before use.
func (c *Client) Hours(ctx context.Context) ([]models.Hour, error) {
	var out []models.Hour
	if err := c.get(ctx, "hours/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createHourRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateHour registers a new interval. Interval validation happens before the
// call; overlap checking is left to the backend.
func (c *Client) CreateHour(ctx context.Context, start, end string) (models.Hour, error) {
	var out models.Hour
	err := c.post(ctx, "hours/", createHourRequest{StartTime: start, EndTime: end}, &out)
	return out, err
}

// Rooms lists the rooms known to the sensor service.
func (c *Client) Rooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	if err := c.get(ctx, "sensors/rooms/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Schedules lists all schedules.
func (c *Client) Schedules(ctx context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := c.get(ctx, "schedules/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type schedulePayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateSchedule creates a named schedule.
func (c *Client) CreateSchedule(ctx context.Context, name, description string) (models.Schedule, error) {
	var out models.Schedule
	err := c.post(ctx, "schedules/", schedulePayload{Name: name, Description: description}, &out)
	return out, err
}

// UpdateSchedule renames a schedule or changes its description.
func (c *Client) UpdateSchedule(ctx context.Context, id int, name, description string) (models.Schedule, error) {
	var out models.Schedule
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("schedules/%d/", id),
		schedulePayload{Name: name, Description: description}, &out)
	return out, err
}

// DeleteSchedule deletes a schedule; its slots cascade server-side.
func (c *Client) DeleteSchedule(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("schedules/%d/", id), nil, nil)
}

// DetailedSchedule fetches one schedule with its slots grouped per day.
func (c *Client) DetailedSchedule(ctx context.Context, id int) (models.ScheduleDetail, error) {
	var out models.ScheduleDetail
	err := c.get(ctx, fmt.Sprintf("schedules/%d/detailed/", id), &out)
	return out, err
}

type updateTimeSlotsRequest struct {
	TimeSlots []models.Slot `json:"time_slots"`
}

// savedSlot is the slot shape of the update_time_slots response. The backend
// answers with its row serializer, which names the temperature field
// "desired_temperature" (unlike the request and the detailed view, which both
// use "temperature") and adds denormalized display fields we ignore.
type savedSlot struct {
	ID            int     `json:"id"`
	DayID         int     `json:"day_id"`
	HourID        int     `json:"hour_id"`
	Temperature   float64 `json:"desired_temperature"`
	HeatingActive bool    `json:"is_heating_active"`
	FanActive     bool    `json:"is_fan_active"`
}

// UpdateTimeSlots replaces a schedule's whole slot set with the given list and
// returns the authoritative slots the backend created.
func (c *Client) UpdateTimeSlots(ctx context.Context, scheduleID int, slots []models.Slot) ([]models.Slot, error) {
	var saved []savedSlot
	err := c.post(ctx, fmt.Sprintf("schedules/%d/update_time_slots/", scheduleID),
		updateTimeSlotsRequest{TimeSlots: slots}, &saved)
	if err != nil {
		return nil, err
	}
	out := make([]models.Slot, 0, len(saved))
	for _, s := range saved {
		out = append(out, models.Slot{
			DayID:         s.DayID,
			HourID:        s.HourID,
			Temperature:   s.Temperature,
			HeatingActive: s.HeatingActive,
			FanActive:     s.FanActive,
		})
	}
	return out, nil
}

type assignRequest struct {
	RoomID int `json:"room_id"`
}

// AssignToRoom links the schedule to a room; the backend supersedes any
// previous active assignment for that room.
func (c *Client) AssignToRoom(ctx context.Context, scheduleID, roomID int) (models.RoomAssignment, error) {
	var out models.RoomAssignment
	err := c.post(ctx, fmt.Sprintf("schedules/%d/assign_to_room/", scheduleID),
		assignRequest{RoomID: roomID}, &out)
	return out, err
}
