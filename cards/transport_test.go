// ABOUTME: Tests for departure parsing, sorting, delay warnings, and formatting.
// ABOUTME: Covers canceled entries, realtime-vs-scheduled fallbacks, and the HTTP path.
package cards

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testTransportCard(t *testing.T) *TransportCard {
	t.Helper()
	c := NewTransportCard(TransportOptions{
		StationID:      "740098000",
		APIKey:         "test-key",
		DelayThreshold: 2 * time.Minute,
		MaxDepartures:  3,
	})
	c.now = fixedClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	return c
}

func decodeTransport(t *testing.T, raw string) transportResponse {
	t.Helper()
	var resp transportResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return resp
}

const departuresFixture = `{
  "departures": [
    {
      "scheduled": "2026-08-30T12:20:00",
      "realtime": "2026-08-30T12:25:00",
      "delay": 300,
      "canceled": false,
      "route": {"designation": "4", "direction": "Radiohuset", "transport_mode": "bus"}
    },
    {
      "scheduled": "2026-08-30T12:05:00",
      "realtime": "2026-08-30T12:05:00",
      "delay": 0,
      "canceled": false,
      "route": {"designation": "14", "direction": "Mörby centrum", "transport_mode": "metro"}
    },
    {
      "scheduled": "2026-08-30T12:10:00",
      "realtime": "",
      "delay": 0,
      "canceled": true,
      "route": {"designation": "43", "direction": "Nynäshamn", "transport_mode": "train"}
    },
    {
      "scheduled": "2026-08-30T12:12:00",
      "realtime": "",
      "delay": 0,
      "canceled": false,
      "route": {"designation": "", "name": "Pendeltåg 43", "direction": "Bålsta", "transport_mode": "train"}
    }
  ]
}`

func TestParseDepartures(t *testing.T) {
	c := testTransportCard(t)
	deps := c.parseDepartures(decodeTransport(t, departuresFixture))

	if len(deps) != 3 {
		t.Fatalf("got %d departures, want 3 (canceled dropped)", len(deps))
	}
	// Sorted by expected time, scheduled as fallback.
	if deps[0].Line != "14" || deps[1].Line != "Pendeltåg 43" || deps[2].Line != "4" {
		t.Errorf("order = %q, %q, %q", deps[0].Line, deps[1].Line, deps[2].Line)
	}
	if deps[2].Delay != 5*time.Minute {
		t.Errorf("delay = %v, want 5m", deps[2].Delay)
	}
	if deps[0].Mode != "METRO" {
		t.Errorf("mode = %q, want METRO", deps[0].Mode)
	}
}

func TestTransportCardUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/departures/740098000" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Write([]byte(departuresFixture))
	}))
	defer srv.Close()

	c := testTransportCard(t)
	c.SetBaseURL(srv.URL)

	body, err := c.Update(context.Background())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(body, "Ⓜ️ 14 Mörby centrum") {
		t.Errorf("body missing metro line:\n%s", body)
	}
	if !strings.Contains(body, "[WARN +5m]") {
		t.Errorf("body missing delay warning:\n%s", body)
	}
	if strings.Contains(body, "Nynäshamn") {
		t.Errorf("canceled departure leaked into display:\n%s", body)
	}
}

func TestTransportCardUpdateMissingConfig(t *testing.T) {
	c := NewTransportCard(TransportOptions{})
	if _, err := c.Update(context.Background()); err == nil {
		t.Fatal("want error without station ID and API key")
	}
}

func TestTransportCardEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"departures": []}`))
	}))
	defer srv.Close()

	c := testTransportCard(t)
	c.SetBaseURL(srv.URL)

	body, err := c.Update(context.Background())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if body != "No upcoming departures" {
		t.Errorf("body = %q", body)
	}
}

func TestFormatWhen(t *testing.T) {
	c := testTransportCard(t)
	now := c.now()
	tests := []struct {
		name     string
		expected time.Time
		want     string
	}{
		{"departed", now.Add(-3 * time.Minute), "left"},
		{"imminent", now.Add(20 * time.Second), "now"},
		{"just left", now.Add(-30 * time.Second), "now"},
		{"none", time.Time{}, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.formatWhen(departure{Expected: tt.expected})
			if got != tt.want {
				t.Errorf("formatWhen = %q, want %q", got, tt.want)
			}
		})
	}

	// Future departures show minutes remaining.
	got := c.formatWhen(departure{Expected: now.Add(7 * time.Minute)})
	if !strings.HasPrefix(got, "in 7m (") {
		t.Errorf("formatWhen future = %q", got)
	}
}

func TestFormatDelay(t *testing.T) {
	c := testTransportCard(t) // threshold 2m
	tests := []struct {
		delay time.Duration
		want  string
	}{
		{0, ""},
		{90 * time.Second, ""},
		{3 * time.Minute, "[WARN +3m]"},
		{-4 * time.Minute, "[WARN -4m]"},
	}
	for _, tt := range tests {
		if got := c.formatDelay(tt.delay); got != tt.want {
			t.Errorf("formatDelay(%v) = %q, want %q", tt.delay, got, tt.want)
		}
	}
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		in     string
		isZero bool
	}{
		{"", true},
		{"garbage", true},
		{"2026-08-30T12:00:00Z", false},
		{"2026-08-30T12:00:00+02:00", false},
		{"2026-08-30T12:00:00", false},
	}
	for _, tt := range tests {
		if got := parseISOTime(tt.in); got.IsZero() != tt.isZero {
			t.Errorf("parseISOTime(%q).IsZero() = %v, want %v", tt.in, got.IsZero(), tt.isZero)
		}
	}
}

func TestLookupStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stops/name/Slussen" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"stop_groups": [{"id": "740098000", "name": "Slussen"}]}`))
	}))
	defer srv.Close()

	c := testTransportCard(t)
	c.SetBaseURL(srv.URL)

	stops, err := c.LookupStation(context.Background(), "Slussen")
	if err != nil {
		t.Fatalf("LookupStation: %v", err)
	}
	if len(stops) != 1 || stops[0].ID != "740098000" {
		t.Errorf("stops = %+v", stops)
	}
}

func TestModeLabelFallback(t *testing.T) {
	c := testTransportCard(t)
	if got := c.modeLabel("FUNICULAR"); got != "FUNICULAR" {
		t.Errorf("unknown mode label = %q", got)
	}
}
