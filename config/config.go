// ABOUTME: Mirror configuration loaded from environment variables with validated defaults.
// ABOUTME: Malformed values and enabled cards missing required secrets fail here, before anything starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configuration errors reported at startup.
var (
	ErrCalendarURLMissing  = errors.New("ENABLE_CALENDAR is set but CALENDAR_ICAL_URL is empty")
	ErrTransportKeyMissing = errors.New("ENABLE_TRANSPORT is set but TRANSPORT_API_KEY or TRANSPORT_STATION_ID is empty")
	ErrMenuServerMissing   = errors.New("ENABLE_MENU is set but MENU_SERVER is empty")
)

// WeatherConfig holds the weather card's location parameters.
type WeatherConfig struct {
	Enabled   bool
	Latitude  float64
	Longitude float64
}

// CalendarConfig holds the calendar card's feed parameters.
type CalendarConfig struct {
	Enabled   bool
	ICalURL   string
	MaxEvents int
}

// TransportConfig holds the transport card's station and display parameters.
type TransportConfig struct {
	Enabled        bool
	APIKey         string
	StationID      string
	UpdateInterval time.Duration
	DelayThreshold time.Duration
	MaxDepartures  int
}

// MenuConfig holds the lunch-menu card's server location.
type MenuConfig struct {
	Enabled bool
	Server  string
}

// PresenceConfig holds the screen power controller's parameters.
type PresenceConfig struct {
	Enabled      bool
	ScreenOutput string
	Timeout      time.Duration
}

// Config is the full mirror configuration.
type Config struct {
	DisplayWidth    int
	DisplayHeight   int
	RefreshRate     time.Duration // clock tick interval
	Bind            string        // control server listen address
	DefaultUserName string
	OverridesPath   string // optional YAML card overrides (GLIMT_CONFIG)

	Weather   WeatherConfig
	Calendar  CalendarConfig
	Transport TransportConfig
	Menu      MenuConfig
	Presence  PresenceConfig
}

// FromEnv loads configuration from environment variables. Clock, greeter, and
// weather default to enabled; calendar, transport, menu, and presence must be
// switched on explicitly and are validated for their required parameters.
// A set-but-unparseable numeric value is a startup error, never a silent
// fallback to the default.
func FromEnv() (*Config, error) {
	r := &envReader{}
	cfg := &Config{
		DisplayWidth:    r.intVal("DISPLAY_WIDTH", 120),
		DisplayHeight:   r.intVal("DISPLAY_HEIGHT", 30),
		RefreshRate:     r.seconds("REFRESH_RATE", time.Second),
		Bind:            envOrDefault("GLIMT_BIND", "127.0.0.1:8390"),
		DefaultUserName: envOrDefault("DEFAULT_USER_NAME", "there"),
		OverridesPath:   os.Getenv("GLIMT_CONFIG"),

		Weather: WeatherConfig{
			Enabled:   envBool("ENABLE_WEATHER", true),
			Latitude:  r.floatVal("WEATHER_LATITUDE", 52.5200),
			Longitude: r.floatVal("WEATHER_LONGITUDE", 13.4050),
		},
		Calendar: CalendarConfig{
			Enabled:   envBool("ENABLE_CALENDAR", false),
			ICalURL:   os.Getenv("CALENDAR_ICAL_URL"),
			MaxEvents: r.intVal("CALENDAR_MAX_EVENTS", 3),
		},
		Transport: TransportConfig{
			Enabled:        envBool("ENABLE_TRANSPORT", false),
			APIKey:         os.Getenv("TRANSPORT_API_KEY"),
			StationID:      os.Getenv("TRANSPORT_STATION_ID"),
			UpdateInterval: r.seconds("TRANSPORT_UPDATE_INTERVAL", time.Minute),
			DelayThreshold: r.seconds("TRANSPORT_DELAY_THRESHOLD", time.Minute),
			MaxDepartures:  r.intVal("TRANSPORT_MAX_DEPARTURES", 6),
		},
		Menu: MenuConfig{
			Enabled: envBool("ENABLE_MENU", false),
			Server:  os.Getenv("MENU_SERVER"),
		},
		Presence: PresenceConfig{
			Enabled:      envBool("ENABLE_PRESENCE", false),
			ScreenOutput: envOrDefault("PRESENCE_SCREEN_OUTPUT", "HDMI-A-1"),
			Timeout:      r.seconds("PRESENCE_TIMEOUT", 2*time.Minute),
		},
	}
	if r.err != nil {
		return nil, r.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate enforces the startup configuration contract: an enabled card with
// a missing required parameter refuses to start rather than failing silently.
func (c *Config) validate() error {
	if c.Calendar.Enabled && c.Calendar.ICalURL == "" {
		return ErrCalendarURLMissing
	}
	if c.Transport.Enabled && (c.Transport.APIKey == "" || c.Transport.StationID == "") {
		return ErrTransportKeyMissing
	}
	if c.Menu.Enabled && c.Menu.Server == "" {
		return ErrMenuServerMissing
	}
	if c.RefreshRate <= 0 {
		return fmt.Errorf("REFRESH_RATE must be positive, got %s", c.RefreshRate)
	}
	if c.Transport.Enabled && c.Transport.UpdateInterval <= 0 {
		return fmt.Errorf("TRANSPORT_UPDATE_INTERVAL must be positive, got %s", c.Transport.UpdateInterval)
	}
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	switch v {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// envReader reads typed environment values, recording the first parse failure
// so FromEnv can reject the whole configuration.
type envReader struct {
	err error
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// intVal reads an integer variable. Unset means the default; a set but
// unparseable value is recorded as a configuration error.
func (r *envReader) intVal(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("%s must be an integer, got %q", key, v))
		return defaultVal
	}
	return n
}

func (r *envReader) floatVal(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(fmt.Errorf("%s must be a number, got %q", key, v))
		return defaultVal
	}
	return f
}

// seconds reads an integer or fractional number of seconds.
func (r *envReader) seconds(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(fmt.Errorf("%s must be a number of seconds, got %q", key, v))
		return defaultVal
	}
	return time.Duration(f * float64(time.Second))
}
