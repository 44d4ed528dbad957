// ABOUTME: Bubble Tea message types used in the mirror's message loop.
// ABOUTME: Tick and result messages carry the card name so each card's chain stays independent.
package tui

import "time"

// cardTickMsg fires when one card's schedule comes due. Each card has its own
// self-perpetuating tick chain.
type cardTickMsg struct {
	Name string
}

// cardResultMsg carries the outcome of one card update back into the loop.
// Err is non-nil on a failed tick; Body is only meaningful when Err is nil.
type cardResultMsg struct {
	Name string
	Body string
	Err  error
	At   time.Time
}

// UserNameMsg is injected by the control server bridge when a presence
// service reports a recognized user. It triggers an immediate greeter refresh.
type UserNameMsg struct {
	Name string
}
