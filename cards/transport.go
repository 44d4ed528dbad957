// ABOUTME: Transport card polling the Trafiklab realtime API for upcoming station departures.
// ABOUTME: Skips canceled entries, sorts by expected time, and flags delays past a threshold.
package cards

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/glimt-dev/glimt/card"
)

const trafiklabBaseURL = "https://realtime-api.trafiklab.se"

// modeLabels maps Trafiklab transport modes to display icons. Unknown modes
// fall back to the raw mode string.
var modeLabels = map[string]string{
	"BUS":   "🚌",
	"METRO": "Ⓜ️",
	"TRAIN": "🚆",
	"TRAM":  "🚊",
	"BOAT":  "🛥",
	"TAXI":  "🚕",
}

// transportResponse mirrors the departures payload fields we consume.
type transportResponse struct {
	Departures []struct {
		Scheduled string `json:"scheduled"`
		Realtime  string `json:"realtime"`
		Delay     int    `json:"delay"` // seconds
		Canceled  bool   `json:"canceled"`
		Route     struct {
			Designation   string `json:"designation"`
			Name          string `json:"name"`
			Direction     string `json:"direction"`
			TransportMode string `json:"transport_mode"`
		} `json:"route"`
	} `json:"departures"`
}

// departure is one upcoming departure after parsing.
type departure struct {
	Line        string
	Destination string
	Mode        string
	Expected    time.Time // zero when the feed had no realtime estimate
	Scheduled   time.Time
	Delay       time.Duration
}

// StopGroup is one station match from the stop lookup endpoint. Its ID is
// what TRANSPORT_STATION_ID expects.
type StopGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransportCard shows upcoming departures for one station with delay warnings.
type TransportCard struct {
	card.Base
	client         *http.Client
	baseURL        string
	stationID      string
	apiKey         string
	delayThreshold time.Duration
	maxDepartures  int
	now            func() time.Time
}

// TransportOptions collects the per-card parameters sourced from configuration.
type TransportOptions struct {
	StationID      string
	APIKey         string
	UpdateInterval time.Duration
	DelayThreshold time.Duration
	MaxDepartures  int
}

// NewTransportCard creates the departures card for the configured station.
func NewTransportCard(opts TransportOptions) *TransportCard {
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = time.Minute
	}
	if opts.DelayThreshold <= 0 {
		opts.DelayThreshold = time.Minute
	}
	if opts.MaxDepartures <= 0 {
		opts.MaxDepartures = 6
	}
	return &TransportCard{
		Base: card.NewBase(card.Config{
			Name:           "Transport",
			Position:       card.BottomCenter,
			Enabled:        true,
			UpdateInterval: opts.UpdateInterval,
			Width:          60,
			Height:         12,
			ShowBorder:     true,
			ShowTitle:      true,
			BorderColor:    "3",
			TitleColor:     "3",
			Align:          "left",
		}),
		client:         newHTTPClient(),
		baseURL:        trafiklabBaseURL,
		stationID:      opts.StationID,
		apiKey:         opts.APIKey,
		delayThreshold: opts.DelayThreshold,
		maxDepartures:  opts.MaxDepartures,
		now:            time.Now,
	}
}

// SetBaseURL overrides the API endpoint. Tests point this at a local server.
func (c *TransportCard) SetBaseURL(u string) { c.baseURL = u }

func (c *TransportCard) Compose() string {
	return "Loading departures..."
}

func (c *TransportCard) Update(ctx context.Context) (string, error) {
	if c.stationID == "" || c.apiKey == "" {
		return "", fmt.Errorf("transport: station ID and API key are required")
	}

	u := fmt.Sprintf("%s/v1/departures/%s?key=%s",
		c.baseURL, url.PathEscape(c.stationID), url.QueryEscape(c.apiKey))

	var resp transportResponse
	if err := getJSON(ctx, c.client, u, &resp); err != nil {
		c.Logf("action=fetch_failed station=%s err=%v", c.stationID, err)
		return "", fmt.Errorf("fetching departures: %w", err)
	}

	deps := c.parseDepartures(resp)
	if len(deps) == 0 {
		return "No upcoming departures", nil
	}
	return c.format(deps), nil
}

// LookupStation queries the stop lookup endpoint by station name. The IDs in
// the result are valid TRANSPORT_STATION_ID values.
func (c *TransportCard) LookupStation(ctx context.Context, name string) ([]StopGroup, error) {
	u := fmt.Sprintf("%s/v1/stops/name/%s?key=%s",
		c.baseURL, url.PathEscape(name), url.QueryEscape(c.apiKey))

	var resp struct {
		StopGroups []StopGroup `json:"stop_groups"`
	}
	if err := getJSON(ctx, c.client, u, &resp); err != nil {
		return nil, fmt.Errorf("looking up station %q: %w", name, err)
	}
	return resp.StopGroups, nil
}

// parseDepartures flattens the payload into departures sorted by expected
// time, dropping canceled entries and records with no usable timestamp.
func (c *TransportCard) parseDepartures(resp transportResponse) []departure {
	var deps []departure
	for _, entry := range resp.Departures {
		if entry.Canceled {
			continue
		}
		dep := departure{
			Line:        entry.Route.Designation,
			Destination: entry.Route.Direction,
			Mode:        strings.ToUpper(entry.Route.TransportMode),
			Expected:    parseISOTime(entry.Realtime),
			Scheduled:   parseISOTime(entry.Scheduled),
			Delay:       time.Duration(entry.Delay) * time.Second,
		}
		if dep.Line == "" {
			dep.Line = entry.Route.Name
		}
		if dep.Expected.IsZero() && dep.Scheduled.IsZero() {
			continue
		}
		deps = append(deps, dep)
	}

	sort.Slice(deps, func(i, j int) bool {
		return c.sortKey(deps[i]).Before(c.sortKey(deps[j]))
	})
	return deps
}

// sortKey orders by expected time, falling back to the timetable.
func (c *TransportCard) sortKey(d departure) time.Time {
	if !d.Expected.IsZero() {
		return d.Expected
	}
	return d.Scheduled
}

// parseISOTime parses an ISO 8601 timestamp, returning the zero time when
// the value is absent or malformed. Naive timestamps are taken as UTC.
func parseISOTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", v); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func (c *TransportCard) format(deps []departure) string {
	if len(deps) > c.maxDepartures {
		deps = deps[:c.maxDepartures]
	}
	lines := make([]string, 0, len(deps))
	for _, d := range deps {
		lines = append(lines, c.formatLine(d))
	}
	return strings.Join(lines, "\n")
}

// formatLine renders "<mode> <line> <destination> - <when> [WARN +Nm]".
func (c *TransportCard) formatLine(d departure) string {
	parts := []string{}
	if label := c.modeLabel(d.Mode); label != "" {
		parts = append(parts, label)
	}
	if d.Line != "" {
		parts = append(parts, d.Line)
	}
	if d.Destination != "" {
		parts = append(parts, d.Destination)
	}
	parts = append(parts, "-", c.formatWhen(d))
	if warn := c.formatDelay(d.Delay); warn != "" {
		parts = append(parts, warn)
	}
	return strings.Join(parts, " ")
}

// formatWhen renders the expected departure relative to now: "left" when the
// vehicle is gone, "now" within a minute, otherwise "in Xm (HH:MM)".
func (c *TransportCard) formatWhen(d departure) string {
	expected := d.Expected
	if expected.IsZero() {
		expected = d.Scheduled
	}
	if expected.IsZero() {
		return "n/a"
	}

	delta := expected.Sub(c.now())
	switch {
	case delta < -time.Minute:
		return "left"
	case delta < time.Minute:
		return "now"
	default:
		minutes := int(math.Ceil(delta.Minutes()))
		return fmt.Sprintf("in %dm (%s)", minutes, expected.Local().Format("15:04"))
	}
}

// formatDelay returns a warning suffix once the delay magnitude crosses the
// configured threshold; empty otherwise.
func (c *TransportCard) formatDelay(delay time.Duration) string {
	if delay == 0 || delay.Abs() < c.delayThreshold {
		return ""
	}
	minutes := int(math.Round(delay.Minutes()))
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("[WARN %s%dm]", sign, minutes)
}

func (c *TransportCard) modeLabel(mode string) string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return mode
}
