// ABOUTME: Core card lifecycle contract: grid positions, per-card configuration, and the Card interface.
// ABOUTME: Cards compose a placeholder once, then produce fresh body text on each scheduled update.
package card

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Position is one of the nine fixed grid slots on the mirror display.
type Position int

const (
	TopLeft Position = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// Positions lists all grid slots in row-major render order.
var Positions = []Position{
	TopLeft, TopCenter, TopRight,
	MiddleLeft, MiddleCenter, MiddleRight,
	BottomLeft, BottomCenter, BottomRight,
}

var positionNames = map[Position]string{
	TopLeft:      "top_left",
	TopCenter:    "top_center",
	TopRight:     "top_right",
	MiddleLeft:   "middle_left",
	MiddleCenter: "middle_center",
	MiddleRight:  "middle_right",
	BottomLeft:   "bottom_left",
	BottomCenter: "bottom_center",
	BottomRight:  "bottom_right",
}

// String returns the snake_case slot name, e.g. "top_left".
func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// Row returns the grid row (0..2) for the position.
func (p Position) Row() int { return int(p) / 3 }

// Col returns the grid column (0..2) for the position.
func (p Position) Col() int { return int(p) % 3 }

// ParsePosition converts a slot name like "bottom_center" back into a Position.
func ParsePosition(s string) (Position, error) {
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown card position %q", s)
}

// Config is the static configuration bound to one card instance. It is
// constructed once and copied by value; cards never mutate it after that.
type Config struct {
	Name           string
	Position       Position
	Enabled        bool
	UpdateInterval time.Duration

	Width  int
	Height int

	ShowBorder  bool
	ShowTitle   bool
	BorderColor string // terminal color name or ANSI code for lipgloss
	TitleColor  string
	TextColor   string
	Align       string // "left", "center", or "right"

	Metadata map[string]string
}

// Card is one self-contained unit of mirror content. The host calls Compose
// exactly once before the first update, then Update on every scheduled tick.
type Card interface {
	// Config returns the card's static configuration.
	Config() Config

	// Compose returns the initial body shown before the first update completes.
	// Implementations must not perform I/O here.
	Compose() string

	// Update computes the card's current body. The caller owns the context
	// deadline. On error the host keeps displaying the previous body, so
	// implementations should return an error rather than an error string.
	Update(ctx context.Context) (string, error)
}

// Base carries the configuration and logging indirection shared by all cards.
// The host injects a logger on mount; before that, Logf falls back to the
// stdlib default logger so construction-time logging never fails.
type Base struct {
	cfg    Config
	logger *log.Logger
}

// NewBase wraps a Config for embedding in a concrete card.
func NewBase(cfg Config) Base {
	return Base{cfg: cfg}
}

// Config returns the card's static configuration.
func (b *Base) Config() Config { return b.cfg }

// Name returns the card's configured name.
func (b *Base) Name() string { return b.cfg.Name }

// Configure replaces the card's configuration. Only layout overrides call
// this, during default-set construction; configs are immutable after
// registration.
func (b *Base) Configure(cfg Config) { b.cfg = cfg }

// SetLogger attaches the host's logger. Passing nil restores the fallback.
func (b *Base) SetLogger(l *log.Logger) { b.logger = l }

// Logf logs a key=value formatted line, prefixed with the card name.
func (b *Base) Logf(format string, args ...any) {
	line := fmt.Sprintf("card=%s ", b.cfg.Name) + fmt.Sprintf(format, args...)
	if b.logger != nil {
		b.logger.Print(line)
		return
	}
	log.Print(line)
}

// LoggerSetter is implemented by cards that accept a host logger. Base
// satisfies it, so every card embedding Base does too.
type LoggerSetter interface {
	SetLogger(*log.Logger)
}
