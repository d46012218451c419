package handlers

import (
	"context"
	"time"

	"ecoheat_dashboard/internal/editor"
	"ecoheat_dashboard/internal/models"
	"ecoheat_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTimeGrid struct {
	grid       *editor.TimeGrid
	loadErr    error
	hour       models.Hour
	hourErr    error
	loadCalls  int
	lastCreate [2]string
}

func (m *mockTimeGrid) Load(ctx context.Context) (*editor.TimeGrid, error) {
	m.loadCalls++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.grid == nil {
		m.grid = testGrid()
	}
	return m.grid, nil
}
func (m *mockTimeGrid) Grid() *editor.TimeGrid { return m.grid }
func (m *mockTimeGrid) CreateHour(ctx context.Context, start, end string) (models.Hour, error) {
	m.lastCreate = [2]string{start, end}
	return m.hour, m.hourErr
}

type mockSchedules struct {
	schedules []models.Schedule
	schedErr  error
	snap      service.Snapshot
	opErr     error
	patch     models.Patch
	affected  int
	assign    models.RoomAssignment

	lastSelectID      int
	lastSelectDiscard bool
	lastPreset        string
	lastDayID         int
	lastHourID        int
	lastDeleteID      int
	lastAssignSchedID int
	lastRoomID        int
	saveCalls         int
}

func (m *mockSchedules) List(ctx context.Context) ([]models.Schedule, error) {
	return m.schedules, m.schedErr
}
func (m *mockSchedules) Select(ctx context.Context, id int, discard bool) (service.Snapshot, error) {
	m.lastSelectID = id
	m.lastSelectDiscard = discard
	return m.snap, m.opErr
}
func (m *mockSchedules) Create(ctx context.Context, name, description string) (models.Schedule, error) {
	if m.opErr != nil {
		return models.Schedule{}, m.opErr
	}
	return models.Schedule{ID: 1, Name: name, Description: description}, nil
}
func (m *mockSchedules) Update(ctx context.Context, id int, name, description string) (models.Schedule, error) {
	if m.opErr != nil {
		return models.Schedule{}, m.opErr
	}
	return models.Schedule{ID: id, Name: name, Description: description}, nil
}
func (m *mockSchedules) Delete(ctx context.Context, id int) (service.Snapshot, error) {
	m.lastDeleteID = id
	return m.snap, m.opErr
}
func (m *mockSchedules) BeginEdit() (service.Snapshot, error) { return m.snap, m.opErr }
func (m *mockSchedules) SetDayPreset(preset string) (service.Snapshot, error) {
	m.lastPreset = preset
	return m.snap, m.opErr
}
func (m *mockSchedules) ToggleDay(dayID int) (service.Snapshot, error) {
	m.lastDayID = dayID
	return m.snap, m.opErr
}
func (m *mockSchedules) ToggleCell(hourID int) (int, service.Snapshot, error) {
	m.lastHourID = hourID
	return m.affected, m.snap, m.opErr
}
func (m *mockSchedules) SetDefaults(temperature *float64, heating, fan *bool) (service.Snapshot, error) {
	return m.snap, m.opErr
}
func (m *mockSchedules) Save(ctx context.Context) (models.Patch, service.Snapshot, error) {
	m.saveCalls++
	return m.patch, m.snap, m.opErr
}
func (m *mockSchedules) Cancel() (service.Snapshot, error) { return m.snap, m.opErr }
func (m *mockSchedules) AssignToRoom(ctx context.Context, scheduleID, roomID int) (models.RoomAssignment, error) {
	m.lastAssignSchedID = scheduleID
	m.lastRoomID = roomID
	return m.assign, m.opErr
}
func (m *mockSchedules) Snapshot() service.Snapshot { return m.snap }

type mockRooms struct {
	rooms []models.Room
	err   error
}

func (m *mockRooms) List(ctx context.Context) ([]models.Room, error) { return m.rooms, m.err }

type mockEventLog struct {
	resp     []models.EditorEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.EditorEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func testGrid() *editor.TimeGrid {
	return editor.NewTimeGrid(
		[]models.Day{
			{ID: 1, Label: "Monday", Ordinal: 0},
			{ID: 2, Label: "Tuesday", Ordinal: 1},
		},
		[]models.Hour{
			{ID: 1, StartTime: "08:00", EndTime: "09:00"},
		},
	)
}
