// ABOUTME: CLI entrypoint for the glimt smart-mirror display.
// ABOUTME: Wires together configuration, the card set, the control server, and the Bubble Tea host.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glimt-dev/glimt/card"
	"github.com/glimt-dev/glimt/cards"
	"github.com/glimt-dev/glimt/config"
	"github.com/glimt-dev/glimt/presence"
	"github.com/glimt-dev/glimt/tui"
	"github.com/glimt-dev/glimt/web"
)

var version = "dev"

// cliFlags holds command-line options. Environment variables carry the card
// configuration; flags only cover process-level switches.
type cliFlags struct {
	bind        string
	configPath  string
	showVersion bool
}

func main() {
	if n := loadDotEnv(".env"); n > 0 {
		log.Printf("component=main action=dotenv_loaded vars=%d", n)
	}

	flags := parseFlags()
	if flags.showVersion {
		fmt.Printf("glimt %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(flags))
}

// parseFlags parses command-line flags.
func parseFlags() cliFlags {
	var flags cliFlags

	fs := flag.NewFlagSet("glimt", flag.ContinueOnError)
	fs.StringVar(&flags.bind, "bind", "", "Control server address (overrides GLIMT_BIND)")
	fs.StringVar(&flags.configPath, "config", "", "YAML card overrides file (overrides GLIMT_CONFIG)")
	fs.BoolVar(&flags.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	return flags
}

// run builds and runs the mirror. Returns the process exit code: 0 on clean
// shutdown, non-zero on startup failure.
func run(flags cliFlags) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid configuration: %v\n", err)
		return 1
	}
	if flags.bind != "" {
		cfg.Bind = flags.bind
	}
	if flags.configPath != "" {
		cfg.OverridesPath = flags.configPath
	}

	overrides, err := config.LoadOverrides(cfg.OverridesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	app := card.NewApp(cfg.DefaultUserName)
	for _, c := range cards.BuildDefaults(cfg, overrides, app.UserName) {
		if err := app.Register(c); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewAppModel(app, ctx).
		WithInitialSize(cfg.DisplayWidth, cfg.DisplayHeight)
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge := tui.NewBridge(program.Send)

	var controller *presence.Controller
	if cfg.Presence.Enabled {
		controller = presence.New(cfg.Presence.ScreenOutput, cfg.Presence.Timeout)
		defer controller.Stop()
	}

	// MotionSink must stay nil when presence is disabled; a typed nil
	// pointer in the interface would pass the server's nil check.
	var sink web.MotionSink
	if controller != nil {
		sink = controller
	}

	server := web.NewServer(web.ServerConfig{Addr: cfg.Bind}, app, bridge.PushUserName, sink)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("component=main action=control_server_failed err=%v", err)
		}
	}()

	_, runErr := program.Run()

	// Cancel any in-flight card fetches, then stop the control server.
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("component=main action=server_shutdown_failed err=%v", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		return 1
	}
	return 0
}
