// ABOUTME: Weather card polling the Open-Meteo forecast API for current conditions and a 3-day outlook.
// ABOUTME: Maps WMO weather codes to icons; fetch failures leave the previous display in place.
package cards

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glimt-dev/glimt/card"
)

const openMeteoBaseURL = "https://api.open-meteo.com"

// weatherIcons maps WMO weather codes to display icons.
var weatherIcons = map[int]string{
	0:  "☀️",
	1:  "🌤️",
	2:  "⛅",
	3:  "☁️",
	45: "🌫️",
	48: "🌫️",
	51: "🌦️",
	53: "🌦️",
	55: "🌧️",
	61: "🌧️",
	63: "🌧️",
	65: "🌧️",
	71: "🌨️",
	73: "🌨️",
	75: "🌨️",
	77: "❄️",
	80: "🌦️",
	81: "🌧️",
	82: "⛈️",
	85: "🌨️",
	86: "🌨️",
	95: "⛈️",
	96: "⛈️",
	99: "⛈️",
}

// weatherIcon returns the icon for a WMO code, with a thermometer fallback.
func weatherIcon(code int) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return "🌡️"
}

// weatherResponse mirrors the Open-Meteo forecast payload fields we display.
type weatherResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"daily"`
}

// WeatherCard shows current conditions and a short forecast for a location.
type WeatherCard struct {
	card.Base
	client  *http.Client
	baseURL string
	lat     float64
	lon     float64
}

// NewWeatherCard creates the weather card for the given coordinates.
func NewWeatherCard(lat, lon float64) *WeatherCard {
	return &WeatherCard{
		Base: card.NewBase(card.Config{
			Name:           "Weather",
			Position:       card.BottomLeft,
			Enabled:        true,
			UpdateInterval: 5 * time.Minute,
			Width:          40,
			Height:         12,
			ShowBorder:     true,
			ShowTitle:      true,
			BorderColor:    "4",
			TitleColor:     "6",
			Align:          "left",
		}),
		client:  newHTTPClient(),
		baseURL: openMeteoBaseURL,
		lat:     lat,
		lon:     lon,
	}
}

// SetBaseURL overrides the API endpoint. Tests point this at a local server.
func (c *WeatherCard) SetBaseURL(u string) { c.baseURL = u }

func (c *WeatherCard) Compose() string {
	return "Loading weather..."
}

func (c *WeatherCard) Update(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", c.lat))
	q.Set("longitude", fmt.Sprintf("%.4f", c.lon))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	q.Set("timezone", "auto")

	var resp weatherResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/v1/forecast?"+q.Encode(), &resp); err != nil {
		c.Logf("action=fetch_failed err=%v", err)
		return "", fmt.Errorf("fetching weather: %w", err)
	}
	return formatWeather(resp), nil
}

// formatWeather renders current conditions plus up to three forecast days.
// Index 0 of the daily arrays is today, so the forecast starts at index 1.
func formatWeather(resp weatherResponse) string {
	var b strings.Builder
	cur := resp.Current
	fmt.Fprintf(&b, "%s  Now: %.1f°C\n\n", weatherIcon(cur.WeatherCode), cur.Temperature)
	fmt.Fprintf(&b, "💨 Wind: %.0f km/h\n", cur.WindSpeed)
	fmt.Fprintf(&b, "💧 Humidity: %.0f%%", cur.Humidity)

	daily := resp.Daily
	n := len(daily.Time)
	if len(daily.TempMax) < n {
		n = len(daily.TempMax)
	}
	if len(daily.TempMin) < n {
		n = len(daily.TempMin)
	}
	if len(daily.WeatherCode) < n {
		n = len(daily.WeatherCode)
	}
	if n > 1 {
		b.WriteString("\n\nForecast:")
		for i := 1; i < n && i < 4; i++ {
			day, err := time.Parse("2006-01-02", daily.Time[i])
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "\n  %s: %s %.0f°/%.0f°C",
				day.Format("Mon"), weatherIcon(daily.WeatherCode[i]),
				daily.TempMax[i], daily.TempMin[i])
		}
	}
	return b.String()
}
