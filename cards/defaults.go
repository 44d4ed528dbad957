// ABOUTME: Builds the default card set as an explicit list of enable-flag/factory pairs.
// ABOUTME: Gating comes from configuration; YAML overrides adjust placement before registration.
package cards

import (
	"github.com/glimt-dev/glimt/card"
	"github.com/glimt-dev/glimt/config"
)

// overridable is the subset of card behavior needed to apply layout overrides.
type overridable interface {
	card.Card
	Configure(card.Config)
}

// BuildDefaults constructs the built-in card set from configuration. userName
// is the greeter's name provider, typically App.UserName. Cards whose enable
// flag is off are constructed disabled so they appear in status output but
// never schedule updates or claim a grid cell.
func BuildDefaults(cfg *config.Config, ov *config.Overrides, userName func() string) []card.Card {
	type entry struct {
		enabled bool
		build   func() overridable
	}

	entries := []entry{
		{true, func() overridable { return NewClockCard(cfg.RefreshRate) }},
		{true, func() overridable { return NewGreeterCard(userName) }},
		{cfg.Weather.Enabled, func() overridable {
			return NewWeatherCard(cfg.Weather.Latitude, cfg.Weather.Longitude)
		}},
		{cfg.Calendar.Enabled, func() overridable {
			return NewCalendarCard(cfg.Calendar.ICalURL, cfg.Calendar.MaxEvents)
		}},
		{cfg.Transport.Enabled, func() overridable {
			return NewTransportCard(TransportOptions{
				StationID:      cfg.Transport.StationID,
				APIKey:         cfg.Transport.APIKey,
				UpdateInterval: cfg.Transport.UpdateInterval,
				DelayThreshold: cfg.Transport.DelayThreshold,
				MaxDepartures:  cfg.Transport.MaxDepartures,
			})
		}},
		{cfg.Menu.Enabled, func() overridable { return NewMenuCard(cfg.Menu.Server) }},
	}

	out := make([]card.Card, 0, len(entries))
	for _, e := range entries {
		c := e.build()
		cc := c.Config()
		cc.Enabled = e.enabled
		c.Configure(ov.Apply(cc))
		out = append(out, c)
	}
	return out
}
