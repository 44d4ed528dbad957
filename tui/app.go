// ABOUTME: Top-level Bubble Tea model driving one independent tick chain per enabled card.
// ABOUTME: Arranges cards on the fixed 3x3 grid; a failing card keeps its previous body and its timer.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glimt-dev/glimt/card"
)

// updateTimeout bounds a single card update. It backstops cards whose own
// HTTP clients are misconfigured; the card-level fetch timeout is tighter.
const updateTimeout = 15 * time.Second

// cardRuntime tracks one enabled card's displayed body and in-flight state.
// Runtimes live in a map, so mutations survive Bubble Tea's value copies.
type cardRuntime struct {
	card       card.Card
	body       string
	inFlight   bool
	lastUpdate time.Time
	lastErr    error
}

// AppModel is the top-level Bubble Tea model for the mirror display.
type AppModel struct {
	app      *card.App
	ctx      context.Context
	runtimes map[string]*cardRuntime
	order    []string // enabled card names in registration order

	logPanel LogPanelModel
	showLog  bool

	width  int
	height int
}

// NewAppModel creates the model, composes every enabled card once, and
// attaches the process logger to cards that accept one.
func NewAppModel(app *card.App, ctx context.Context) AppModel {
	if ctx == nil {
		ctx = context.Background()
	}

	m := AppModel{
		app:      app,
		ctx:      ctx,
		runtimes: make(map[string]*cardRuntime),
		logPanel: NewLogPanelModel(200),
	}

	for _, c := range app.Enabled() {
		name := c.Config().Name
		if ls, ok := c.(card.LoggerSetter); ok {
			ls.SetLogger(log.Default())
		}
		m.runtimes[name] = &cardRuntime{card: c, body: c.Compose()}
		m.order = append(m.order, name)
	}
	return m
}

// WithInitialSize sets the display dimensions used until the terminal reports
// its real size. The configured DISPLAY_WIDTH/HEIGHT feed through here.
func (m AppModel) WithInitialSize(width, height int) AppModel {
	m.width = width
	m.height = height
	return m
}

// Init implements tea.Model. Every enabled card gets an immediate update plus
// the first tick of its self-perpetuating chain.
func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, name := range m.order {
		rt := m.runtimes[name]
		rt.inFlight = true
		cmds = append(cmds,
			m.updateCardCmd(rt.card),
			m.tickCmd(name, rt.card.Config().UpdateInterval),
		)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case cardTickMsg:
		return m.handleTick(msg)

	case cardResultMsg:
		return m.handleResult(msg)

	case UserNameMsg:
		return m.handleUserName(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleTick fires an update for the card unless one is still in flight, in
// which case the tick is skipped rather than queued. The chain continues
// either way, so one slow or failing card never stalls its own schedule.
func (m AppModel) handleTick(msg cardTickMsg) (tea.Model, tea.Cmd) {
	rt, ok := m.runtimes[msg.Name]
	if !ok {
		return m, nil
	}

	next := m.tickCmd(msg.Name, rt.card.Config().UpdateInterval)
	if rt.inFlight {
		log.Printf("component=tui action=tick_skipped card=%s reason=update_in_flight", msg.Name)
		m.logPanel.Append(UpdateEvent{Time: time.Now(), Card: msg.Name, Kind: UpdateSkipped})
		return m, next
	}

	rt.inFlight = true
	return m, tea.Batch(m.updateCardCmd(rt.card), next)
}

// handleResult records one update outcome. On failure the previous body stays
// on screen; the error is logged and surfaced through the status endpoint.
func (m AppModel) handleResult(msg cardResultMsg) (tea.Model, tea.Cmd) {
	rt, ok := m.runtimes[msg.Name]
	if !ok {
		return m, nil
	}

	rt.inFlight = false
	rt.lastUpdate = msg.At
	rt.lastErr = msg.Err
	m.app.RecordUpdate(msg.Name, msg.At, msg.Err)

	if msg.Err != nil {
		log.Printf("component=tui action=update_failed card=%s err=%v", msg.Name, msg.Err)
		m.logPanel.Append(UpdateEvent{Time: msg.At, Card: msg.Name, Kind: UpdateFailed, Detail: msg.Err.Error()})
		return m, nil
	}

	rt.body = msg.Body
	m.logPanel.Append(UpdateEvent{Time: msg.At, Card: msg.Name, Kind: UpdateOK})
	return m, nil
}

// handleUserName refreshes the greeter immediately so a recognized face shows
// up without waiting out the greeter's long interval.
func (m AppModel) handleUserName(msg UserNameMsg) (tea.Model, tea.Cmd) {
	log.Printf("component=tui action=user_name_changed name=%s", msg.Name)
	rt, ok := m.runtimes["Greeter"]
	if !ok || rt.inFlight {
		return m, nil
	}
	rt.inFlight = true
	return m, m.updateCardCmd(rt.card)
}

// handleKeyMsg processes app-level key bindings.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "l":
		m.showLog = !m.showLog
		return m, nil
	}
	return m, nil
}

// updateCardCmd runs one card update off the message loop. Errors (and
// panics) are converted into result messages so they can never reach the
// scheduler; other cards' chains are unaffected by construction.
func (m AppModel) updateCardCmd(c card.Card) tea.Cmd {
	name := c.Config().Name
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = cardResultMsg{Name: name, Err: fmt.Errorf("card panic: %v", r), At: time.Now()}
			}
		}()

		ctx, cancel := context.WithTimeout(m.ctx, updateTimeout)
		defer cancel()

		body, err := c.Update(ctx)
		return cardResultMsg{Name: name, Body: body, Err: err, At: time.Now()}
	}
}

// tickCmd schedules the card's next tick.
func (m AppModel) tickCmd(name string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return cardTickMsg{Name: name}
	})
}

// View implements tea.Model. Renders the 3x3 grid plus a one-line status bar,
// with the event log replacing the bottom grid row when toggled on.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 48 || m.height < 12 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 48x12.", m.width, m.height)
	}

	grid := m.app.Layout()
	cellW := m.width / 3
	cellH := (m.height - 1) / 3

	var cells [3][3]string
	for _, pos := range card.Positions {
		if c, ok := grid[pos]; ok {
			cells[pos.Row()][pos.Col()] = m.renderCardBox(c.Config().Name, cellW, cellH)
		} else {
			cells[pos.Row()][pos.Col()] = EmptyCellStyle.Width(cellW).Height(cellH).Render("")
		}
	}
	var rows []string
	for row := 0; row < 3; row++ {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[row][:]...))
	}

	if m.showLog {
		lp := m.logPanel
		lp.SetSize(m.width, cellH)
		rows[2] = lp.View()
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderCardBox renders one card's frame, optional title, and current body.
func (m AppModel) renderCardBox(name string, cellW, cellH int) string {
	rt := m.runtimes[name]
	if rt == nil {
		return EmptyCellStyle.Width(cellW).Height(cellH).Render("")
	}
	cfg := rt.card.Config()

	bodyStyle := CardBodyStyle
	if cfg.TextColor != "" {
		bodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.TextColor))
	}
	body := bodyStyle.Render(rt.body)

	var content string
	if cfg.ShowTitle {
		title := CardTitleStyle
		if cfg.TitleColor != "" {
			title = title.Foreground(lipgloss.Color(cfg.TitleColor))
		}
		content = title.Render(cfg.Name) + "\n" + body
	} else {
		content = body
	}

	style := lipgloss.NewStyle().
		Width(cellW - 2).
		Height(cellH - 2).
		Align(alignFor(cfg.Align))
	if cfg.ShowBorder {
		border := CardBorderStyle
		if cfg.BorderColor != "" {
			border = border.BorderForeground(lipgloss.Color(cfg.BorderColor))
		}
		style = style.Border(border.GetBorderStyle()).
			BorderForeground(border.GetBorderTopForeground())
	}
	return style.Render(content)
}

// renderStatusBar renders the single-line bar at the bottom of the display.
func (m AppModel) renderStatusBar() string {
	content := fmt.Sprintf("glimt | %d cards | user: %s | q quit · l log",
		len(m.order), m.app.UserName())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left,
		StatusBarStyle.Width(m.width).Render(content))
}

// alignFor maps a config alignment name to a lipgloss position.
func alignFor(name string) lipgloss.Position {
	switch name {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
