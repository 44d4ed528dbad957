// ABOUTME: Tests for the lunch-menu card's day selection and rendering.
// ABOUTME: Covers weekday windows, weekend rollover, and the fetch path.
package cards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

var menuWeek = []menuDay{
	{Day: "Måndag", Dishes: []string{"Köttbullar", "Vegetarisk lasagne"}},
	{Day: "Tisdag", Dishes: []string{"Fisk"}},
	{Day: "Onsdag", Dishes: []string{"Soppa"}},
	{Day: "Fredag", Dishes: []string{"Tacos"}},
}

func TestFormatMenuMidweek(t *testing.T) {
	// A Tuesday: show Tuesday and the next listed day (Wednesday).
	now := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	body := formatMenu(menuWeek, now)

	if !strings.Contains(body, "Tisdag:") || !strings.Contains(body, "Onsdag:") {
		t.Errorf("missing expected days:\n%s", body)
	}
	if strings.Contains(body, "Måndag") || strings.Contains(body, "Fredag") {
		t.Errorf("unexpected days shown:\n%s", body)
	}
	if !strings.Contains(body, "  • Fisk") {
		t.Errorf("dishes should be bulleted:\n%s", body)
	}
}

func TestFormatMenuSkipsGapDays(t *testing.T) {
	// A Thursday with no Thursday entry: Friday is first.
	now := time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC)
	body := formatMenu(menuWeek, now)

	if !strings.Contains(body, "Fredag:") {
		t.Errorf("Friday missing:\n%s", body)
	}
	if strings.Contains(body, "Onsdag") {
		t.Errorf("past day shown:\n%s", body)
	}
}

func TestFormatMenuWeekendRollsToMonday(t *testing.T) {
	// A Saturday: show next week's start.
	now := time.Date(2026, 9, 5, 11, 0, 0, 0, time.UTC)
	body := formatMenu(menuWeek, now)

	if !strings.Contains(body, "Måndag:") || !strings.Contains(body, "Tisdag:") {
		t.Errorf("weekend should roll to Monday:\n%s", body)
	}
}

func TestFormatMenuUnknownDayNames(t *testing.T) {
	days := []menuDay{{Day: "Holiday", Dishes: []string{"Closed"}}}
	body := formatMenu(days, time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC))
	if !strings.Contains(body, "No menu data available") {
		t.Errorf("unknown day names should yield the empty message:\n%s", body)
	}
}

func TestMenuCardUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/actions/get-qlik-menu" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"day": "Måndag", "dishes": ["Köttbullar"]}]`))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	c := NewMenuCard(u.Host)
	c.now = fixedClock(time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC)) // a Monday

	body, err := c.Update(context.Background())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(body, "Köttbullar") {
		t.Errorf("body = %q", body)
	}
}

func TestMenuCardNoServer(t *testing.T) {
	c := NewMenuCard("")
	if _, err := c.Update(context.Background()); err == nil {
		t.Fatal("want error when no server is configured")
	}
}

func TestMenuCardEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	c := NewMenuCard(u.Host)

	body, err := c.Update(context.Background())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(body, "No menu data available") {
		t.Errorf("body = %q", body)
	}
}
