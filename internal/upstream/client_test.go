package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecoheat_dashboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", token, 2*time.Second), srv
}

func TestDays_SendsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"day":"Monday","ordinal":0},{"id":2,"day":"Tuesday","ordinal":1}]`))
	}, "opaque-token")

	days, err := c.Days(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer opaque-token" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotPath != "/api/days/" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(days) != 2 || days[0].Label != "Monday" {
		t.Fatalf("unexpected days: %+v", days)
	}
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"token invalid"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, models.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
			},
		},
		{
			name: "conflict", status: http.StatusConflict, body: `{"error":"room already has an active schedule"}`,
			check: func(t *testing.T, err error) {
				var ce *models.ConflictError
				if !errors.As(err, &ce) {
					t.Fatalf("expected ConflictError, got %v", err)
				}
				if ce.Reason != "room already has an active schedule" {
					t.Fatalf("reason = %q", ce.Reason)
				}
			},
		},
		{
			name: "bad_request", status: http.StatusBadRequest, body: `{"error":"No time slots provided"}`,
			check: func(t *testing.T, err error) {
				var ve *models.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			},
		},
		{
			name: "server_error", status: http.StatusBadGateway, body: ``,
			check: func(t *testing.T, err error) {
				var fe *models.FetchError
				if !errors.As(err, &fe) {
					t.Fatalf("expected FetchError, got %v", err)
				}
				if fe.StatusCode != http.StatusBadGateway {
					t.Fatalf("status = %d", fe.StatusCode)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}, "tok")
			_, err := c.Schedules(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestDo_TransportFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on
	c := New(srv.URL, "tok", time.Second)

	_, err := c.Rooms(context.Background())
	var fe *models.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != 0 {
		t.Fatalf("transport failures carry no status, got %d", fe.StatusCode)
	}
}

func TestCheckCredential_ExpiredJWTFailsBeforeNetwork(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	tok, err := expired.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}

	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, tok)

	_, err = c.Days(context.Background())
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if called {
		t.Fatalf("expired credential must fail before any network call")
	}
}

func TestCheckCredential_OpaqueTokenPassesThrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}, "not.a.jwt-but-has-dots")

	if _, err := c.Days(context.Background()); err != nil {
		t.Fatalf("opaque token must not be rejected locally: %v", err)
	}
}

func TestUpdateTimeSlots_PayloadShape(t *testing.T) {
	var gotBody string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(raw)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		// The response uses the backend's row serializer: the temperature
		// comes back as "desired_temperature" plus display-only fields.
		_, _ = w.Write([]byte(`[{"id":55,"day_id":1,"hour_id":2,"schedule_id":7,` +
			`"day_name":"Monday","hour_range":"18:00 - 21:00","schedule_name":"Work Schedule",` +
			`"desired_temperature":21.0,"is_heating_active":true,"is_fan_active":false}]`))
	}, "tok")

	slots, err := c.UpdateTimeSlots(context.Background(), 7, []models.Slot{
		{DayID: 1, HourID: 2, Temperature: 21, HeatingActive: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"time_slots":[{"day_id":1,"hour_id":2,"temperature":21,"is_heating_active":true,"is_fan_active":false}]}`
	if gotBody != want {
		t.Fatalf("body = %s, want %s", gotBody, want)
	}
	if len(slots) != 1 {
		t.Fatalf("unexpected response slots: %+v", slots)
	}
	if slots[0].Temperature != 21 {
		t.Fatalf("authoritative temperature lost on decode: got %v, want 21", slots[0].Temperature)
	}
	if slots[0].DayID != 1 || slots[0].HourID != 2 || !slots[0].HeatingActive || slots[0].FanActive {
		t.Fatalf("unexpected response slots: %+v", slots)
	}
}
