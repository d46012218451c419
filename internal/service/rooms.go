package service

import (
	"context"

	"ecoheat_dashboard/internal/models"
)

// RoomService proxies the backend's room catalog so the dashboard can offer
// assignment targets. Read-only; valve/fan control stays with the backend.
type RoomService struct {
	backend Backend
}

func NewRoomService(backend Backend) *RoomService {
	return &RoomService{backend: backend}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.backend.Rooms(ctx)
}
