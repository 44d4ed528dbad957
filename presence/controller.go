// ABOUTME: Screen power controller driven by presence motion events with an inactivity timeout.
// ABOUTME: Motion turns the display on via wlr-randr; the screen goes dark after a quiet period.
package presence

import (
	"log"
	"os"
	"os/exec"
	"sync"
	"time"
)

// CommandRunner executes the screen control command. The default shells out
// to wlr-randr with the Wayland session environment; tests substitute a fake.
type CommandRunner func(args ...string) error

// Controller turns the screen on when motion is reported and off after a
// configurable period without motion. Safe for concurrent use; the control
// server delivers motion events from handler goroutines.
type Controller struct {
	mu       sync.Mutex
	output   string
	timeout  time.Duration
	timer    *time.Timer
	screenOn bool
	run      CommandRunner
}

// New creates a Controller for the given display output. timeout is the
// inactivity period before the screen turns off.
func New(output string, timeout time.Duration) *Controller {
	return &Controller{
		output:  output,
		timeout: timeout,
		run:     runWlrRandr,
	}
}

// SetRunner replaces the screen command runner. Tests use this.
func (c *Controller) SetRunner(run CommandRunner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.run = run
}

// Motion handles a reported motion event: the screen comes on and the
// inactivity timer restarts.
func (c *Controller) Motion() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setScreen(true)
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.timeout, c.onTimeout)
}

// Stop cancels the pending timer and turns the screen off.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.setScreen(false)
}

// ScreenOn reports whether the controller believes the screen is powered.
func (c *Controller) ScreenOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screenOn
}

func (c *Controller) onTimeout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = nil
	c.setScreen(false)
}

// setScreen flips the screen state, running the command only on transitions.
// Callers hold the mutex.
func (c *Controller) setScreen(on bool) {
	if c.screenOn == on {
		return
	}
	flag := "--off"
	if on {
		flag = "--on"
	}
	if err := c.run("--output", c.output, flag); err != nil {
		log.Printf("component=presence action=screen_command_failed output=%s flag=%s err=%v",
			c.output, flag, err)
		return
	}
	c.screenOn = on
	log.Printf("component=presence action=screen_set output=%s on=%t", c.output, on)
}

// runWlrRandr executes wlr-randr against the mirror's Wayland session.
func runWlrRandr(args ...string) error {
	cmd := exec.Command("wlr-randr", args...)
	cmd.Env = append(os.Environ(),
		"XDG_RUNTIME_DIR=/run/user/1000",
		"WAYLAND_DISPLAY=wayland-0",
	)
	return cmd.Run()
}
