// ABOUTME: Scrollable update-event log overlay using the bubbles viewport component.
// ABOUTME: Records each card tick outcome (updated, failed, skipped) with color-coded lines.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// UpdateKind classifies one card tick outcome for the event log.
type UpdateKind int

const (
	UpdateOK UpdateKind = iota
	UpdateFailed
	UpdateSkipped
)

// String returns the log label for the kind.
func (k UpdateKind) String() string {
	switch k {
	case UpdateOK:
		return "updated"
	case UpdateFailed:
		return "failed"
	case UpdateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// UpdateEvent is one entry in the event log.
type UpdateEvent struct {
	Time   time.Time
	Card   string
	Kind   UpdateKind
	Detail string // error text for failed ticks
}

// LogPanelModel is a scrollable log of card update events, shown as an
// overlay strip when toggled.
type LogPanelModel struct {
	entries  []UpdateEvent
	max      int
	viewport viewport.Model
	width    int
	height   int
}

// NewLogPanelModel creates a log panel with a maximum number of entries.
// If maxEntries is <= 0, it defaults to 200.
func NewLogPanelModel(maxEntries int) LogPanelModel {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	vp := viewport.New(80, 8)
	return LogPanelModel{
		entries:  make([]UpdateEvent, 0, maxEntries),
		max:      maxEntries,
		viewport: vp,
	}
}

// Append adds an event to the log, evicting the oldest entry at capacity.
func (m *LogPanelModel) Append(evt UpdateEvent) {
	if len(m.entries) >= m.max {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, evt)
	m.syncViewport()
}

// Len returns the number of entries in the log.
func (m LogPanelModel) Len() int {
	return len(m.entries)
}

// SetSize sets the available dimensions and updates the viewport.
func (m *LogPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	vpWidth := w - 2
	vpHeight := h - 3
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.syncViewport()
}

// View renders the log panel.
func (m LogPanelModel) View() string {
	var content string
	if len(m.entries) == 0 {
		content = "No events yet"
	} else {
		content = m.viewport.View()
	}

	rendered := LogTitleStyle.Render("UPDATE LOG") + "\n" + content

	return LogBorderStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rendered)
}

// syncViewport rebuilds viewport content from entries and scrolls to bottom.
func (m *LogPanelModel) syncViewport() {
	if len(m.entries) == 0 {
		m.viewport.SetContent("")
		return
	}
	lines := make([]string, 0, len(m.entries))
	for _, evt := range m.entries {
		lines = append(lines, formatEntry(evt))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// formatEntry formats a single update event as a log line.
func formatEntry(evt UpdateEvent) string {
	ts := LogTimestampStyle.Render(evt.Time.Format("15:04:05"))
	kind := kindStyle(evt.Kind).Render(evt.Kind.String())

	parts := []string{ts, fmt.Sprintf("[%s]", evt.Card), kind}
	if evt.Detail != "" {
		parts = append(parts, evt.Detail)
	}
	return strings.Join(parts, " ")
}

// kindStyle returns the lipgloss style for an update kind.
func kindStyle(kind UpdateKind) lipgloss.Style {
	switch kind {
	case UpdateFailed:
		return LogErrorStyle
	case UpdateSkipped:
		return LogSkipStyle
	default:
		return LogEventStyle
	}
}
