package service

import (
	"context"
	"errors"
	"testing"

	"ecoheat_dashboard/internal/models"
)

func TestTimeGrid_LoadCachesGrid(t *testing.T) {
	b := weekBackend()
	s := NewTimeGridService(b, nil, nil)

	if s.Grid() != nil {
		t.Fatalf("grid must be nil before the first load")
	}
	grid, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Grid(); got != grid {
		t.Fatalf("cached grid differs from the loaded one")
	}
	if len(grid.Days()) != 7 || len(grid.Hours()) != 2 {
		t.Fatalf("got %d days, %d hours", len(grid.Days()), len(grid.Hours()))
	}
}

func TestTimeGrid_CreateHourValidatesLocally(t *testing.T) {
	b := weekBackend()
	events := &fakeEventRepo{}
	s := NewTimeGridService(b, events, nil)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct{ start, end string }{
		{"abc", "10:00"},
		{"09:00", ""},
		{"10:00", "09:00"}, // start must precede end
		{"10:00", "10:00"},
	}
	for _, c := range cases {
		_, err := s.CreateHour(context.Background(), c.start, c.end)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("CreateHour(%q, %q): expected validation error, got %v", c.start, c.end, err)
		}
	}
	if len(events.events) != 0 {
		t.Fatalf("rejected intervals must not be logged")
	}
}

func TestTimeGrid_CreateHourExtendsCachedGrid(t *testing.T) {
	b := weekBackend()
	b.createHour = models.Hour{ID: 3, StartTime: "12:00", EndTime: "14:00"}
	events := &fakeEventRepo{}
	s := NewTimeGridService(b, events, nil)
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	h, err := s.CreateHour(context.Background(), "12:00", "14:00")
	if err != nil {
		t.Fatalf("create hour: %v", err)
	}
	if h.ID != 3 {
		t.Fatalf("unexpected hour: %+v", h)
	}
	if _, ok := s.Grid().Hour(3); !ok {
		t.Fatalf("new hour missing from the cached grid")
	}
	// Hours stay sorted by start time.
	hours := s.Grid().Hours()
	if len(hours) != 3 || hours[1].ID != 3 {
		t.Fatalf("hour order wrong: %+v", hours)
	}
	if len(events.events) != 1 || events.events[0].Type != "HOUR_CREATED" {
		t.Fatalf("expected HOUR_CREATED event, got %+v", events.events)
	}
}
