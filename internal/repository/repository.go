package repository

import (
	"context"
	"database/sql"
	"time"

	"ecoheat_dashboard/internal/models"
)

// EventRepo is the append-only audit log of completed dashboard mutations.
type EventRepo interface {
	Append(ctx context.Context, e models.EditorEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.EditorEvent, error)
}

type Repository struct {
	Events EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Events: NewEventSQLite(db),
	}
}
