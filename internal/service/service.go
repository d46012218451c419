package service

import (
	"context"
	"time"

	"ecoheat_dashboard/internal/editor"
	"ecoheat_dashboard/internal/logger"
	"ecoheat_dashboard/internal/models"
	"ecoheat_dashboard/internal/repository"
)

// Backend is the slice of the controller REST API the services consume.
// *upstream.Client satisfies it; tests substitute fakes.
type Backend interface {
	Days(ctx context.Context) ([]models.Day, error)
	Hours(ctx context.Context) ([]models.Hour, error)
	CreateHour(ctx context.Context, start, end string) (models.Hour, error)
	Rooms(ctx context.Context) ([]models.Room, error)
	Schedules(ctx context.Context) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, name, description string) (models.Schedule, error)
	UpdateSchedule(ctx context.Context, id int, name, description string) (models.Schedule, error)
	DeleteSchedule(ctx context.Context, id int) error
	DetailedSchedule(ctx context.Context, id int) (models.ScheduleDetail, error)
	UpdateTimeSlots(ctx context.Context, scheduleID int, slots []models.Slot) ([]models.Slot, error)
	AssignToRoom(ctx context.Context, scheduleID, roomID int) (models.RoomAssignment, error)
}

// TimeGrid owns the day × hour catalog: loaded once per session, read-only
// afterwards except for explicit hour creation.
type TimeGrid interface {
	Load(ctx context.Context) (*editor.TimeGrid, error)
	Grid() *editor.TimeGrid
	CreateHour(ctx context.Context, start, end string) (models.Hour, error)
}

// Schedules is the schedule controller: it orchestrates the slot store,
// selection model and reconciler against the backend API.
type Schedules interface {
	List(ctx context.Context) ([]models.Schedule, error)
	Select(ctx context.Context, id int, discard bool) (Snapshot, error)
	Create(ctx context.Context, name, description string) (models.Schedule, error)
	Update(ctx context.Context, id int, name, description string) (models.Schedule, error)
	Delete(ctx context.Context, id int) (Snapshot, error)
	BeginEdit() (Snapshot, error)
	SetDayPreset(preset string) (Snapshot, error)
	ToggleDay(dayID int) (Snapshot, error)
	ToggleCell(hourID int) (int, Snapshot, error)
	SetDefaults(temperature *float64, heating, fan *bool) (Snapshot, error)
	Save(ctx context.Context) (models.Patch, Snapshot, error)
	Cancel() (Snapshot, error)
	AssignToRoom(ctx context.Context, scheduleID, roomID int) (models.RoomAssignment, error)
	Snapshot() Snapshot
}

// Rooms lists assignment targets.
type Rooms interface {
	List(ctx context.Context) ([]models.Room, error)
}

// EventLog exposes the append-only audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.EditorEvent, error)
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SCHEDULE_CREATED", "SLOTS_SAVED", ...
}

// Service aggregates all sub-services.
type Service struct {
	TimeGrid
	Schedules
	Rooms
	EventLog
}

// NewService wires the backend client and the repository layer into concrete
// services.
func NewService(backend Backend, repos *repository.Repository, log *logger.Logger) *Service {
	grid := NewTimeGridService(backend, repos.Events, log)
	return &Service{
		TimeGrid:  grid,
		Schedules: NewScheduleService(backend, repos.Events, grid, log),
		Rooms:     NewRoomService(backend),
		EventLog:  NewEventLogService(repos.Events),
	}
}
