// ABOUTME: Clock card rendering the local time as three-row block digits with a date line.
// ABOUTME: Recomputes every tick from an injectable clock; performs no I/O and never fails.
package cards

import (
	"context"
	"strings"
	"time"

	"github.com/glimt-dev/glimt/card"
)

// ClockCard shows the current local time and date.
type ClockCard struct {
	card.Base
	now func() time.Time
}

// NewClockCard creates the clock with its default placement. interval is
// normally one second; the refresh-rate setting feeds through here.
func NewClockCard(interval time.Duration) *ClockCard {
	return &ClockCard{
		Base: card.NewBase(card.Config{
			Name:           "Clock",
			Position:       card.TopCenter,
			Enabled:        true,
			UpdateInterval: interval,
			Width:          40,
			Height:         8,
			ShowBorder:     true,
			ShowTitle:      false,
			BorderColor:    "6",
			TextColor:      "6",
			Align:          "center",
		}),
		now: time.Now,
	}
}

func (c *ClockCard) Compose() string {
	return c.render(c.now())
}

func (c *ClockCard) Update(ctx context.Context) (string, error) {
	return c.render(c.now()), nil
}

func (c *ClockCard) render(t time.Time) string {
	return blockDigits(t.Format("15:04:05")) + "\n" + t.Format("Monday, January 2, 2006")
}

// digitGlyphs maps each clock character to its three display rows. All glyph
// rows for one character have equal width so columns stay aligned.
var digitGlyphs = map[rune][3]string{
	'0': {"┌─┐", "│ │", "└─┘"},
	'1': {" ┐ ", " │ ", " ╵ "},
	'2': {"╶─┐", "┌─┘", "└─╴"},
	'3': {"╶─┐", " ─┤", "╶─┘"},
	'4': {"╷ ╷", "└─┤", "  ╵"},
	'5': {"┌─╴", "└─┐", "╶─┘"},
	'6': {"┌─╴", "├─┐", "└─┘"},
	'7': {"╶─┐", "  │", "  ╵"},
	'8': {"┌─┐", "├─┤", "└─┘"},
	'9': {"┌─┐", "└─┤", "╶─┘"},
	':': {" ", "·", "·"},
}

// blockDigits renders a time string like "15:04:05" as three rows of
// box-drawing glyphs. Unknown characters render as spaces of glyph width.
func blockDigits(s string) string {
	var rows [3]strings.Builder
	for i, ch := range s {
		glyph, ok := digitGlyphs[ch]
		if !ok {
			glyph = [3]string{" ", " ", " "}
		}
		for r := 0; r < 3; r++ {
			if i > 0 {
				rows[r].WriteString(" ")
			}
			rows[r].WriteString(glyph[r])
		}
	}
	return rows[0].String() + "\n" + rows[1].String() + "\n" + rows[2].String()
}
