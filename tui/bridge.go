// ABOUTME: Bridge connecting out-of-process collaborators to the Bubble Tea message loop.
// ABOUTME: Wraps tea.Program.Send so the control server can inject messages without importing tea.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Bridge injects external events into a running program. Construct it with
// program.Send after tea.NewProgram.
type Bridge struct {
	send func(msg tea.Msg)
}

// NewBridge creates a Bridge that sends messages via the given function.
func NewBridge(send func(msg tea.Msg)) *Bridge {
	return &Bridge{send: send}
}

// PushUserName notifies the TUI that the recognized user changed. The greeter
// refreshes on receipt instead of waiting for its next scheduled tick.
func (b *Bridge) PushUserName(name string) {
	b.send(UserNameMsg{Name: name})
}
