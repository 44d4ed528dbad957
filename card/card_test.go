// ABOUTME: Tests for Position parsing/formatting and the Base logging indirection.
// ABOUTME: Covers round-tripping slot names and logger fallback before host attachment.
package card

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{TopLeft, "top_left"},
		{TopCenter, "top_center"},
		{MiddleCenter, "middle_center"},
		{BottomRight, "bottom_right"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositionRowCol(t *testing.T) {
	tests := []struct {
		pos      Position
		row, col int
	}{
		{TopLeft, 0, 0},
		{TopRight, 0, 2},
		{MiddleCenter, 1, 1},
		{BottomLeft, 2, 0},
		{BottomRight, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := tt.pos.Row(); got != tt.row {
				t.Errorf("Row() = %d, want %d", got, tt.row)
			}
			if got := tt.pos.Col(); got != tt.col {
				t.Errorf("Col() = %d, want %d", got, tt.col)
			}
		})
	}
}

func TestParsePositionRoundTrip(t *testing.T) {
	for _, p := range Positions {
		parsed, err := ParsePosition(p.String())
		if err != nil {
			t.Fatalf("ParsePosition(%q) error: %v", p.String(), err)
		}
		if parsed != p {
			t.Errorf("ParsePosition(%q) = %v, want %v", p.String(), parsed, p)
		}
	}
}

func TestParsePositionUnknown(t *testing.T) {
	if _, err := ParsePosition("center_stage"); err == nil {
		t.Error("expected error for unknown position name")
	}
}

func TestBaseLogfUsesInjectedLogger(t *testing.T) {
	b := NewBase(Config{Name: "clock"})

	var buf bytes.Buffer
	b.SetLogger(log.New(&buf, "", 0))
	b.Logf("action=update status=%s", "ok")

	got := buf.String()
	if !strings.Contains(got, "card=clock") {
		t.Errorf("log line missing card name: %q", got)
	}
	if !strings.Contains(got, "action=update status=ok") {
		t.Errorf("log line missing formatted message: %q", got)
	}
}

func TestBaseLogfFallsBackBeforeAttachment(t *testing.T) {
	// Redirect the stdlib default logger to observe the fallback path.
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	b := NewBase(Config{Name: "weather"})
	b.Logf("action=init")

	if !strings.Contains(buf.String(), "card=weather action=init") {
		t.Errorf("fallback log missing message: %q", buf.String())
	}
}
