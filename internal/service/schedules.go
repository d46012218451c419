package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ecoheat_dashboard/internal/editor"
	"ecoheat_dashboard/internal/logger"
	"ecoheat_dashboard/internal/models"
	"ecoheat_dashboard/internal/repository"
)

// State is the controller's position in the editing lifecycle.
type State string

const (
	StateIdle    State = "idle"    // viewing a schedule, no pending edits
	StateEditing State = "editing" // selection model active, diverging from the store
	StateSaving  State = "saving"  // patch in flight
	StateEmpty   State = "empty"   // no schedules exist
)

// Controller errors surfaced to the HTTP layer.
var (
	ErrNotEditing       = errors.New("no edit session is active")
	ErrAlreadyEditing   = errors.New("an edit session is already active")
	ErrPendingEdits     = errors.New("pending edits would be lost; confirm discard first")
	ErrSaveInFlight     = errors.New("a save is already in flight")
	ErrNoActiveSchedule = errors.New("no schedule is selected")
	ErrGridNotLoaded    = errors.New("time grid is not loaded yet")
)

// Snapshot is the controller state handed to views and the websocket stream.
type Snapshot struct {
	State              State                `json:"state"`
	ActiveScheduleID   int                  `json:"active_schedule_id,omitempty"`
	ActiveScheduleName string               `json:"active_schedule_name,omitempty"`
	ScheduleCount      int                  `json:"schedule_count"`
	SlotCount          int                  `json:"slot_count"`
	Preset             string               `json:"preset,omitempty"`
	ActiveDays         []int                `json:"active_days,omitempty"`
	PendingEdits       int                  `json:"pending_edits"`
	Defaults           *editor.SlotDefaults `json:"defaults,omitempty"`
	LastError          string               `json:"last_error,omitempty"`
}

// ScheduleService is the schedule controller. All mutations are serialized by
// the mutex, so edits behave as in a single-threaded event loop: no two
// mutations interleave mid-computation. Network calls run with the lock
// released; the schedule id recorded before the call guards against applying
// a late response that belongs to a schedule no longer active.
type ScheduleService struct {
	mu      sync.Mutex
	backend Backend
	events  repository.EventRepo
	grid    TimeGrid
	log     *logger.Logger

	state     State
	schedules []models.Schedule
	activeID  int
	store     *editor.SlotStore
	sel       *editor.SelectionModel
	saving    bool
	lastErr   error
}

func NewScheduleService(backend Backend, events repository.EventRepo, grid TimeGrid, log *logger.Logger) *ScheduleService {
	return &ScheduleService{
		backend: backend,
		events:  events,
		grid:    grid,
		log:     log,
		state:   StateEmpty,
		store:   editor.NewSlotStore(),
	}
}

// List refreshes the schedule catalog. When nothing is selected yet the first
// schedule becomes active; with zero schedules the controller goes Empty.
func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	scheds, err := s.backend.Schedules(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.schedules = scheds
	selectFirst := 0
	if len(scheds) == 0 {
		if !s.saving && s.state != StateEditing {
			s.state = StateEmpty
			s.activeID = 0
			s.store.Clear()
			s.sel = nil
		}
	} else if s.activeID == 0 && !s.saving {
		selectFirst = scheds[0].ID
	}
	s.mu.Unlock()

	if selectFirst != 0 {
		if _, err := s.Select(ctx, selectFirst, false); err != nil {
			return scheds, err
		}
	}
	return scheds, nil
}

// Select makes a schedule the active one and hydrates the slot store from its
// detailed representation. Switching away from an edit session with pending
// edits requires discard=true; otherwise ErrPendingEdits is returned so the
// caller can ask for confirmation. A response arriving after the user has
// already moved on to another schedule is dropped (stale-response guard).
func (s *ScheduleService) Select(ctx context.Context, id int, discard bool) (Snapshot, error) {
	grid := s.grid.Grid()
	if grid == nil {
		return s.Snapshot(), ErrGridNotLoaded
	}

	s.mu.Lock()
	if s.saving {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrSaveInFlight
	}
	if s.state == StateEditing && s.sel != nil && s.sel.PendingCount() > 0 && !discard {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrPendingEdits
	}
	// Tear the session down before the fetch so observers never see an
	// editing state without a selection model behind it.
	if s.state == StateEditing {
		s.state = StateIdle
	}
	s.sel = nil
	s.activeID = id
	s.mu.Unlock()

	detail, err := s.backend.DetailedSchedule(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID != id {
		// Another selection superseded this one while the fetch was in flight.
		return s.snapshotLocked(), nil
	}
	if err == nil {
		err = s.store.Hydrate(detail, grid)
	}
	if err != nil {
		// The store still mirrors the previously selected schedule. Drop the
		// selection and the store together so none of its slots can ever be
		// saved under the new id; editing stays refused until a re-select
		// hydrates successfully.
		s.activeID = 0
		s.store.Clear()
		s.lastErr = err
		return s.snapshotLocked(), err
	}
	s.state = StateIdle
	s.lastErr = nil
	return s.snapshotLocked(), nil
}

// Create adds a schedule. An empty name never reaches the network.
func (s *ScheduleService) Create(ctx context.Context, name, description string) (models.Schedule, error) {
	if strings.TrimSpace(name) == "" {
		return models.Schedule{}, models.NewValidationError("name", "schedule name must not be empty")
	}
	created, err := s.backend.CreateSchedule(ctx, name, description)
	if err != nil {
		return models.Schedule{}, err
	}

	s.mu.Lock()
	s.schedules = append(s.schedules, created)
	selectIt := s.activeID == 0 && !s.saving
	s.mu.Unlock()

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "SCHEDULE_CREATED",
		Description: fmt.Sprintf("schedule %q created", created.Name),
		Metadata:    map[string]any{"schedule_id": created.ID},
	})

	if selectIt {
		if _, err := s.Select(ctx, created.ID, false); err != nil {
			return created, err
		}
	}
	return created, nil
}

// Update renames a schedule or changes its description.
func (s *ScheduleService) Update(ctx context.Context, id int, name, description string) (models.Schedule, error) {
	if strings.TrimSpace(name) == "" {
		return models.Schedule{}, models.NewValidationError("name", "schedule name must not be empty")
	}
	updated, err := s.backend.UpdateSchedule(ctx, id, name, description)
	if err != nil {
		return models.Schedule{}, err
	}

	s.mu.Lock()
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			s.schedules[i] = updated
		}
	}
	s.mu.Unlock()

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "SCHEDULE_UPDATED",
		Description: fmt.Sprintf("schedule %q updated", updated.Name),
		Metadata:    map[string]any{"schedule_id": id},
	})
	return updated, nil
}

// Delete removes a schedule; the backend cascades its slots. Deleting the
// active schedule selects the first remaining one, or transitions to Empty
// with the store cleared and no dangling selection state.
func (s *ScheduleService) Delete(ctx context.Context, id int) (Snapshot, error) {
	s.mu.Lock()
	if s.saving {
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrSaveInFlight
	}
	s.mu.Unlock()

	if err := s.backend.DeleteSchedule(ctx, id); err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	kept := s.schedules[:0]
	for _, sc := range s.schedules {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	s.schedules = kept

	selectNext := 0
	if id == s.activeID {
		// The edited schedule is gone; its pending edits are moot.
		s.activeID = 0
		s.sel = nil
		s.store.Clear()
		if len(s.schedules) > 0 {
			selectNext = s.schedules[0].ID
		} else {
			s.state = StateEmpty
		}
	}
	s.mu.Unlock()

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "SCHEDULE_DELETED",
		Description: fmt.Sprintf("schedule %d deleted", id),
		Metadata:    map[string]any{"schedule_id": id},
	})

	if selectNext != 0 {
		return s.Select(ctx, selectNext, false)
	}
	return s.Snapshot(), nil
}

// BeginEdit opens an edit session for the active schedule.
func (s *ScheduleService) BeginEdit() (Snapshot, error) {
	grid := s.grid.Grid()

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.saving:
		return s.snapshotLocked(), ErrSaveInFlight
	case s.state == StateEditing:
		return s.snapshotLocked(), ErrAlreadyEditing
	case s.activeID == 0 || s.state == StateEmpty:
		return s.snapshotLocked(), ErrNoActiveSchedule
	case grid == nil:
		return s.snapshotLocked(), ErrGridNotLoaded
	}
	s.sel = editor.NewSelectionModel(grid)
	s.state = StateEditing
	s.lastErr = nil
	return s.snapshotLocked(), nil
}

// SetDayPreset switches the active-day selection rule.
func (s *ScheduleService) SetDayPreset(preset string) (Snapshot, error) {
	p, err := editor.ParsePreset(preset)
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.sel == nil {
		return s.snapshotLocked(), ErrNotEditing
	}
	s.sel.SetDayPreset(p)
	return s.snapshotLocked(), nil
}

// ToggleDay flips one day's membership; only meaningful under the custom
// preset, a silent no-effect otherwise.
func (s *ScheduleService) ToggleDay(dayID int) (Snapshot, error) {
	grid := s.grid.Grid()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.sel == nil {
		return s.snapshotLocked(), ErrNotEditing
	}
	if grid != nil {
		if _, ok := grid.Day(dayID); !ok {
			return s.snapshotLocked(), models.NewValidationError("day_id", fmt.Sprintf("unknown day %d", dayID))
		}
	}
	s.sel.ToggleDay(dayID)
	return s.snapshotLocked(), nil
}

// ToggleCell toggles one hour across every active day and reports how many
// (day, hour) pairs were affected.
func (s *ScheduleService) ToggleCell(hourID int) (int, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.sel == nil {
		return 0, s.snapshotLocked(), ErrNotEditing
	}
	n, err := s.sel.ToggleCell(s.store, hourID)
	if err != nil {
		return 0, s.snapshotLocked(), err
	}
	return n, s.snapshotLocked(), nil
}

// SetDefaults updates the field values applied to subsequently toggled-on
// cells. Nil pointers leave a field untouched.
func (s *ScheduleService) SetDefaults(temperature *float64, heating, fan *bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing || s.sel == nil {
		return s.snapshotLocked(), ErrNotEditing
	}
	if temperature != nil {
		if err := s.sel.SetTemperature(*temperature); err != nil {
			return s.snapshotLocked(), err
		}
	}
	if heating != nil {
		s.sel.SetHeating(*heating)
	}
	if fan != nil {
		s.sel.SetFan(*fan)
	}
	return s.snapshotLocked(), nil
}

// Save computes the patch, sends the merged replacement list, and re-seeds
// the store from the authoritative response. On failure the session returns
// to Editing with the error attached and every pending edit preserved, so the
// user can retry without re-entering data. At most one save is in flight; a
// second request while Saving is rejected, never queued.
func (s *ScheduleService) Save(ctx context.Context) (models.Patch, Snapshot, error) {
	s.mu.Lock()
	if s.saving {
		defer s.mu.Unlock()
		return models.Patch{}, s.snapshotLocked(), ErrSaveInFlight
	}
	if s.state != StateEditing || s.sel == nil {
		defer s.mu.Unlock()
		return models.Patch{}, s.snapshotLocked(), ErrNotEditing
	}

	patch := editor.ComputePatch(s.store, s.sel)
	if patch.Size() == 0 {
		// Nothing to persist; close the session.
		s.sel = nil
		s.state = StateIdle
		s.lastErr = nil
		defer s.mu.Unlock()
		return patch, s.snapshotLocked(), nil
	}

	merged := editor.MergeForSave(s.store, patch)
	if len(merged) == 0 {
		err := models.NewValidationError("time_slots",
			"removing every slot is not supported; delete the schedule instead")
		s.lastErr = err
		defer s.mu.Unlock()
		return patch, s.snapshotLocked(), err
	}

	id := s.activeID
	s.saving = true
	s.state = StateSaving
	s.mu.Unlock()

	slots, err := s.backend.UpdateTimeSlots(ctx, id, merged)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if s.activeID != id {
		// Stale response for a schedule that is no longer active.
		return patch, s.snapshotLocked(), nil
	}
	if err != nil {
		s.state = StateEditing
		s.lastErr = err
		return patch, s.snapshotLocked(), err
	}
	s.store.Replace(id, slots)
	s.sel = nil
	s.state = StateIdle
	s.lastErr = nil

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "SLOTS_SAVED",
		Description: fmt.Sprintf("schedule %d: %d upserts, %d removals", id, len(patch.Upserts), len(patch.Removals)),
		Metadata: map[string]any{
			"schedule_id": id,
			"upserts":     len(patch.Upserts),
			"removals":    len(patch.Removals),
			"slot_count":  len(slots),
		},
	})
	return patch, s.snapshotLocked(), nil
}

// Cancel discards the edit session. An in-flight save cannot be aborted; the
// caller must wait for its response first.
func (s *ScheduleService) Cancel() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return s.snapshotLocked(), ErrSaveInFlight
	}
	if s.state != StateEditing || s.sel == nil {
		return s.snapshotLocked(), ErrNotEditing
	}
	s.sel = nil
	s.state = StateIdle
	s.lastErr = nil
	return s.snapshotLocked(), nil
}

// AssignToRoom links a schedule to a room. Any schedule can be assigned, not
// just the active one; the backend supersedes the room's previous active
// assignment and rejects unknown ids itself.
func (s *ScheduleService) AssignToRoom(ctx context.Context, scheduleID, roomID int) (models.RoomAssignment, error) {
	if roomID <= 0 {
		return models.RoomAssignment{}, models.NewValidationError("room_id", "no room selected")
	}
	if scheduleID <= 0 {
		return models.RoomAssignment{}, models.NewValidationError("schedule_id", "no schedule selected")
	}

	assignment, err := s.backend.AssignToRoom(ctx, scheduleID, roomID)
	if err != nil {
		return models.RoomAssignment{}, err
	}

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "ROOM_ASSIGNED",
		Description: fmt.Sprintf("schedule %d assigned to room %d", scheduleID, roomID),
		Metadata:    map[string]any{"schedule_id": scheduleID, "room_id": roomID},
	})
	return assignment, nil
}

// Snapshot returns the current controller state.
func (s *ScheduleService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ScheduleService) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         s.state,
		ScheduleCount: len(s.schedules),
		SlotCount:     s.store.Len(),
	}
	if s.activeID != 0 {
		snap.ActiveScheduleID = s.activeID
		for _, sc := range s.schedules {
			if sc.ID == s.activeID {
				snap.ActiveScheduleName = sc.Name
			}
		}
	}
	if s.sel != nil {
		snap.Preset = s.sel.Preset().String()
		snap.ActiveDays = s.sel.ActiveDays()
		snap.PendingEdits = s.sel.PendingCount()
		d := s.sel.Defaults()
		snap.Defaults = &d
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	return snap
}

func (s *ScheduleService) appendEvent(ctx context.Context, e models.EditorEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "err", err, "type", e.Type)
	}
}
