package service

import (
	"context"
	"fmt"
	"sync"

	"ecoheat_dashboard/internal/editor"
	"ecoheat_dashboard/internal/logger"
	"ecoheat_dashboard/internal/models"
	"ecoheat_dashboard/internal/repository"
)

// TimeGridService loads and caches the day × hour catalog.
type TimeGridService struct {
	mu      sync.Mutex
	backend Backend
	events  repository.EventRepo
	log     *logger.Logger
	grid    *editor.TimeGrid
}

func NewTimeGridService(backend Backend, events repository.EventRepo, log *logger.Logger) *TimeGridService {
	return &TimeGridService{backend: backend, events: events, log: log}
}

// Load fetches both catalogs and replaces the cached grid. Transport failures
// surface as FetchError; nothing is retried here.
func (s *TimeGridService) Load(ctx context.Context) (*editor.TimeGrid, error) {
	days, err := s.backend.Days(ctx)
	if err != nil {
		return nil, err
	}
	hours, err := s.backend.Hours(ctx)
	if err != nil {
		return nil, err
	}
	grid := editor.NewTimeGrid(days, hours)

	s.mu.Lock()
	s.grid = grid
	s.mu.Unlock()
	return grid, nil
}

// Grid returns the cached grid, or nil before the first successful Load.
func (s *TimeGridService) Grid() *editor.TimeGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// CreateHour validates the interval locally (start < end, HH:MM) and lets the
// backend judge overlap. The new hour is folded into the cached grid.
func (s *TimeGridService) CreateHour(ctx context.Context, start, end string) (models.Hour, error) {
	if err := editor.ValidateHourInterval(start, end); err != nil {
		return models.Hour{}, err
	}
	h, err := s.backend.CreateHour(ctx, start, end)
	if err != nil {
		return models.Hour{}, err
	}

	s.mu.Lock()
	if s.grid != nil {
		s.grid.AddHour(h)
	}
	s.mu.Unlock()

	s.appendEvent(ctx, models.EditorEvent{
		Type:        "HOUR_CREATED",
		Description: fmt.Sprintf("hour interval %s–%s created", h.StartTime, h.EndTime),
		Metadata:    map[string]any{"hour_id": h.ID},
	})
	return h, nil
}

// appendEvent logs the audit entry best-effort; a failed insert must not fail
// the mutation it describes.
func (s *TimeGridService) appendEvent(ctx context.Context, e models.EditorEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("event_append_failed", "err", err, "type", e.Type)
	}
}
