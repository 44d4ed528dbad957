// ABOUTME: Tests for the update-event log panel: capacity, labels, and rendering.
// ABOUTME: Exercises entry formatting without a running terminal.
package tui

import (
	"strings"
	"testing"
	"time"
)

func TestLogPanelAppendEvictsAtCapacity(t *testing.T) {
	m := NewLogPanelModel(3)
	for i := 0; i < 5; i++ {
		m.Append(UpdateEvent{Time: time.Now(), Card: "Clock", Kind: UpdateOK})
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
}

func TestLogPanelDefaultCapacity(t *testing.T) {
	m := NewLogPanelModel(0)
	if m.max != 200 {
		t.Errorf("max = %d, want 200", m.max)
	}
}

func TestUpdateKindString(t *testing.T) {
	tests := []struct {
		kind UpdateKind
		want string
	}{
		{UpdateOK, "updated"},
		{UpdateFailed, "failed"},
		{UpdateSkipped, "skipped"},
		{UpdateKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFormatEntry(t *testing.T) {
	evt := UpdateEvent{
		Time:   time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC),
		Card:   "Weather",
		Kind:   UpdateFailed,
		Detail: "fetch broke",
	}
	line := formatEntry(evt)
	for _, want := range []string{"15:04:05", "[Weather]", "failed", "fetch broke"} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %q", want, line)
		}
	}
}

func TestLogPanelViewEmpty(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(80, 10)
	if got := m.View(); !strings.Contains(got, "No events yet") {
		t.Errorf("empty view = %q", got)
	}
}

func TestLogPanelViewShowsEntries(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(80, 10)
	m.Append(UpdateEvent{Time: time.Now(), Card: "Transport", Kind: UpdateOK})
	if got := m.View(); !strings.Contains(got, "[Transport]") {
		t.Errorf("view missing entry:\n%s", got)
	}
}
