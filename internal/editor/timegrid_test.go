package editor

import (
	"testing"

	"ecoheat_dashboard/internal/models"
)

func TestNewTimeGrid_SortsHoursByStartThenID(t *testing.T) {
	hours := []models.Hour{
		{ID: 3, StartTime: "12:00", EndTime: "13:00"},
		{ID: 2, StartTime: "08:00", EndTime: "09:00"},
		{ID: 5, StartTime: "08:00", EndTime: "10:00"}, // same start, higher id
		{ID: 1, StartTime: "06:00", EndTime: "07:00"},
	}
	g := NewTimeGrid(nil, hours)
	got := g.Hours()
	wantIDs := []int{1, 2, 5, 3}
	for i, h := range got {
		if h.ID != wantIDs[i] {
			t.Fatalf("hour order = %v, want ids %v", got, wantIDs)
		}
	}
}

func TestNewTimeGrid_DayLookups(t *testing.T) {
	g := weekGrid()
	id, ok := g.DayIDByLabel("Wednesday")
	if !ok || id != 3 {
		t.Fatalf("DayIDByLabel(Wednesday) = %d,%v", id, ok)
	}
	if _, ok := g.DayIDByLabel("Funday"); ok {
		t.Fatalf("unexpected match for unknown label")
	}
	if _, ok := g.Day(42); ok {
		t.Fatalf("unexpected match for unknown day id")
	}
}

func TestAddHour_KeepsOrder(t *testing.T) {
	g := NewTimeGrid(nil, []models.Hour{
		{ID: 1, StartTime: "06:00", EndTime: "08:00"},
		{ID: 2, StartTime: "18:00", EndTime: "21:00"},
	})
	g.AddHour(models.Hour{ID: 3, StartTime: "12:00", EndTime: "13:00"})
	got := g.Hours()
	if got[1].ID != 3 {
		t.Fatalf("new hour not sorted into place: %+v", got)
	}
	if _, ok := g.Hour(3); !ok {
		t.Fatalf("new hour not indexed")
	}
}

func TestValidateHourInterval(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid", "08:00", "09:00", false},
		{"start_after_end", "10:00", "09:00", true},
		{"start_equals_end", "09:00", "09:00", true},
		{"malformed_start", "8am", "09:00", true},
		{"malformed_end", "08:00", "25:61", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateHourInterval(tc.start, tc.end)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %s-%s", tc.start, tc.end)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr {
				if _, ok := err.(*models.ValidationError); !ok {
					t.Fatalf("expected *models.ValidationError, got %T", err)
				}
			}
		})
	}
}
