// ABOUTME: App owns the registered card set, the 3x3 layout invariant, and the shared user-name cell.
// ABOUTME: Registration rejects duplicate names, invalid intervals, and grid position collisions up front.
package card

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Configuration errors surfaced at registration time. These abort startup;
// they are never masked the way transient data-source errors are.
var (
	ErrDuplicateCard   = errors.New("card name already registered")
	ErrInvalidInterval = errors.New("card update interval must be positive")
	ErrPositionTaken   = errors.New("grid position already occupied by an enabled card")
)

// Status is a snapshot of one card's update history, consumed by the control
// server's status endpoint.
type Status struct {
	Name       string
	Position   Position
	Enabled    bool
	Interval   time.Duration
	LastUpdate time.Time
	LastError  string
}

// App owns the full set of registered cards and the fixed 3x3 layout.
// Cards are registered before the UI enters its run loop; dynamic add/remove
// after start is not supported.
type App struct {
	mu       sync.Mutex
	order    []Card
	byName   map[string]Card
	statuses map[string]*Status

	userName    atomic.Value // string; empty means "unset"
	defaultName string
}

// NewApp creates an empty App. defaultName is the greeting fallback used
// until a presence service reports a recognized user.
func NewApp(defaultName string) *App {
	a := &App{
		byName:      make(map[string]Card),
		statuses:    make(map[string]*Status),
		defaultName: defaultName,
	}
	a.userName.Store("")
	return a
}

// Register adds a card keyed by its configured name. The first registration
// wins: a duplicate name, a non-positive interval, or an enabled card whose
// position is already occupied is rejected without disturbing earlier cards.
func (a *App) Register(c Card) error {
	cfg := c.Config()

	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("card %q: %w", cfg.Name, ErrInvalidInterval)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byName[cfg.Name]; exists {
		return fmt.Errorf("card %q: %w", cfg.Name, ErrDuplicateCard)
	}
	if cfg.Enabled {
		for _, existing := range a.order {
			ecfg := existing.Config()
			if ecfg.Enabled && ecfg.Position == cfg.Position {
				return fmt.Errorf("card %q: %w (%s held by %q)",
					cfg.Name, ErrPositionTaken, cfg.Position, ecfg.Name)
			}
		}
	}

	a.order = append(a.order, c)
	a.byName[cfg.Name] = c
	a.statuses[cfg.Name] = &Status{
		Name:     cfg.Name,
		Position: cfg.Position,
		Enabled:  cfg.Enabled,
		Interval: cfg.UpdateInterval,
	}
	return nil
}

// Card returns the registered card with the given name, or nil.
func (a *App) Card(name string) Card {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.byName[name]
}

// Cards returns all registered cards in registration order.
func (a *App) Cards() []Card {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Card, len(a.order))
	copy(out, a.order)
	return out
}

// Enabled returns the enabled cards in registration order.
func (a *App) Enabled() []Card {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []Card
	for _, c := range a.order {
		if c.Config().Enabled {
			out = append(out, c)
		}
	}
	return out
}

// Layout maps each enabled card to its grid slot. The Register invariant
// guarantees the mapping is collision-free, so this never fails.
func (a *App) Layout() map[Position]Card {
	a.mu.Lock()
	defer a.mu.Unlock()
	grid := make(map[Position]Card)
	for _, c := range a.order {
		if cfg := c.Config(); cfg.Enabled {
			grid[cfg.Position] = c
		}
	}
	return grid
}

// SetUserName records the recognized user for the greeter. Last write wins;
// the new name becomes visible on the greeter's next tick.
func (a *App) SetUserName(name string) {
	a.userName.Store(name)
}

// UserName returns the current user name, falling back to the configured
// default when no presence service has reported one.
func (a *App) UserName() string {
	if name, _ := a.userName.Load().(string); name != "" {
		return name
	}
	return a.defaultName
}

// RecordUpdate notes the outcome of one card tick for the status endpoint.
func (a *App) RecordUpdate(name string, at time.Time, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.statuses[name]
	if !ok {
		return
	}
	st.LastUpdate = at
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastError = ""
	}
}

// Statuses returns a snapshot of every card's update status in registration order.
func (a *App) Statuses() []Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Status, 0, len(a.order))
	for _, c := range a.order {
		out = append(out, *a.statuses[c.Config().Name])
	}
	return out
}
