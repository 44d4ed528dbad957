// ABOUTME: Calendar card fetching an iCal feed and listing the next upcoming events.
// ABOUTME: Picks icons from summary keywords and formats start times relative to today.
package cards

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/glimt-dev/glimt/card"
)

// eventIcons pairs summary keywords with icons. Order matters: the first
// matching keyword wins, so keep the more specific entries early.
var eventIcons = []struct {
	keyword string
	icon    string
}{
	{"meeting", "🗓️"},
	{"call", "📞"},
	{"lunch", "🍽️"},
	{"birthday", "🎂"},
	{"travel", "✈️"},
	{"workout", "💪"},
	{"doctor", "🏥"},
}

const defaultEventIcon = "📅"

// eventIcon selects an icon for an event summary by keyword.
func eventIcon(summary string) string {
	lower := strings.ToLower(summary)
	for _, e := range eventIcons {
		if strings.Contains(lower, e.keyword) {
			return e.icon
		}
	}
	return defaultEventIcon
}

// calendarEvent is one upcoming entry parsed out of the feed.
type calendarEvent struct {
	Summary string
	Start   time.Time
}

// CalendarCard shows upcoming events from an iCal URL.
type CalendarCard struct {
	card.Base
	client    *http.Client
	icalURL   string
	maxEvents int
	now       func() time.Time
}

// NewCalendarCard creates the calendar card for the given feed URL.
func NewCalendarCard(icalURL string, maxEvents int) *CalendarCard {
	if maxEvents <= 0 {
		maxEvents = 3
	}
	return &CalendarCard{
		Base: card.NewBase(card.Config{
			Name:           "Calendar",
			Position:       card.TopRight,
			Enabled:        true,
			UpdateInterval: 5 * time.Minute,
			Width:          40,
			Height:         12,
			ShowBorder:     true,
			ShowTitle:      true,
			BorderColor:    "2",
			TitleColor:     "2",
			Align:          "left",
		}),
		client:    newHTTPClient(),
		icalURL:   icalURL,
		maxEvents: maxEvents,
		now:       time.Now,
	}
}

func (c *CalendarCard) Compose() string {
	return "Loading calendar..."
}

func (c *CalendarCard) Update(ctx context.Context) (string, error) {
	if c.icalURL == "" {
		return "", fmt.Errorf("calendar: no iCal URL configured")
	}

	body, err := get(ctx, c.client, c.icalURL)
	if err != nil {
		c.Logf("action=fetch_failed err=%v", err)
		return "", fmt.Errorf("fetching calendar: %w", err)
	}

	events, err := parseICalEvents(body, c.now())
	if err != nil {
		c.Logf("action=parse_failed err=%v", err)
		return "", fmt.Errorf("parsing calendar feed: %w", err)
	}
	return c.format(events), nil
}

// parseICalEvents extracts future events from raw iCal data, sorted by start.
// Events without a parseable start time are skipped rather than failing the feed.
func parseICalEvents(data []byte, now time.Time) ([]calendarEvent, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var events []calendarEvent
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		prop := ev.GetProperty(ics.ComponentPropertySummary)
		if prop == nil {
			continue
		}
		if start.Before(now) {
			continue
		}
		events = append(events, calendarEvent{Summary: prop.Value, Start: start})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// format renders the event list. The next event is highlighted with its icon
// and time; later events follow in the same shape.
func (c *CalendarCard) format(events []calendarEvent) string {
	if len(events) == 0 {
		return "📅  Calendar\n\nNo upcoming events"
	}
	if len(events) > c.maxEvents {
		events = events[:c.maxEvents]
	}

	now := c.now()
	var lines []string
	for i, ev := range events {
		lines = append(lines, fmt.Sprintf("%s %s", eventIcon(ev.Summary), ev.Summary))
		lines = append(lines, "   "+formatEventTime(ev.Start, now))
		if i < len(events)-1 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// formatEventTime renders a start time relative to now: "Today 15:04",
// "Tomorrow 15:04", or "Mon Jan 2, 15:04" for anything further out.
// Day comparison happens in now's location so feed timezones don't shift days.
func formatEventTime(start, now time.Time) string {
	local := start.In(now.Location())
	ny, nm, nd := now.Date()
	ey, em, ed := local.Date()

	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	eventDay := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())

	switch {
	case eventDay.Equal(today):
		return "Today " + local.Format("15:04")
	case eventDay.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow " + local.Format("15:04")
	default:
		return local.Format("Mon Jan 2, 15:04")
	}
}
