// ABOUTME: Menu card fetching the weekly office lunch menu from a processing server.
// ABOUTME: Shows today plus the next listed day; weekends roll forward to Monday.
package cards

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/glimt-dev/glimt/card"
)

// menuDayIndex maps the feed's Swedish day names to Monday-based weekday
// numbers (0=Monday .. 6=Sunday).
var menuDayIndex = map[string]int{
	"måndag":  0,
	"tisdag":  1,
	"onsdag":  2,
	"torsdag": 3,
	"fredag":  4,
	"lördag":  5,
	"söndag":  6,
}

// menuDay is one day's entry in the menu feed.
type menuDay struct {
	Day    string   `json:"day"`
	Dishes []string `json:"dishes"`
}

// MenuCard shows the next two days of the weekly lunch menu.
type MenuCard struct {
	card.Base
	client *http.Client
	server string // host[:port] of the processing server
	now    func() time.Time
}

// NewMenuCard creates the menu card pointed at the given processing server.
func NewMenuCard(server string) *MenuCard {
	return &MenuCard{
		Base: card.NewBase(card.Config{
			Name:           "Menu",
			Position:       card.BottomRight,
			Enabled:        true,
			UpdateInterval: 6 * time.Hour,
			Width:          35,
			Height:         8,
			ShowBorder:     false,
			ShowTitle:      false,
			TextColor:      "214",
			Align:          "center",
		}),
		client: newHTTPClient(),
		server: server,
		now:    time.Now,
	}
}

func (c *MenuCard) Compose() string {
	return "Loading menu..."
}

func (c *MenuCard) Update(ctx context.Context) (string, error) {
	if c.server == "" {
		return "", fmt.Errorf("menu: no server configured")
	}

	var days []menuDay
	url := fmt.Sprintf("http://%s/actions/get-qlik-menu", c.server)
	if err := getJSON(ctx, c.client, url, &days); err != nil {
		c.Logf("action=fetch_failed server=%s err=%v", c.server, err)
		return "", fmt.Errorf("fetching menu: %w", err)
	}
	if len(days) == 0 {
		return "🍽  Menu\n\nNo menu data available", nil
	}
	return formatMenu(days, c.now()), nil
}

// formatMenu picks the first two listed days starting from today (or Monday
// when today is a weekend) and renders them with bulleted dishes.
func formatMenu(days []menuDay, now time.Time) string {
	// time.Weekday has Sunday=0; the menu feed counts from Monday.
	today := (int(now.Weekday()) + 6) % 7
	startDay := today
	if startDay >= 5 {
		startDay = 0
	}

	type indexed struct {
		idx int
		day menuDay
	}
	var upcoming []indexed
	for _, d := range days {
		idx, ok := menuDayIndex[strings.ToLower(d.Day)]
		if !ok || idx < startDay {
			continue
		}
		upcoming = append(upcoming, indexed{idx: idx, day: d})
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].idx < upcoming[j].idx })
	if len(upcoming) > 2 {
		upcoming = upcoming[:2]
	}
	if len(upcoming) == 0 {
		return "🍽  Menu\n\nNo menu data available"
	}

	lines := []string{"🍽  Menu", ""}
	for i, entry := range upcoming {
		lines = append(lines, entry.day.Day+":")
		for _, dish := range entry.day.Dishes {
			lines = append(lines, "  • "+dish)
		}
		if i < len(upcoming)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}
