package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive launcher",
	Long: `Launch the interactive launcher.

Apps are ranked on every keystroke; contacts, files and settings follow
once typing pauses. Start a query with an engine shortcut (e.g. "yt ")
to search that engine.

Controls:
  ↑/ctrl+k, ↓/ctrl+j - Move selection
  Enter              - Launch / open
  ctrl+p             - Pin or unpin
  ctrl+x             - Hide
  ctrl+a             - Ask the direct-answer engine
  ctrl+r             - Retry a failed answer
  Esc                - Clear the query / quit
  F1                 - Toggle help`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Recover so the terminal is left with a usable stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stopScheduler := startScheduler(ctx)
	defer stopScheduler()

	ports := &tui.Ports{
		Apps:        sourceManagers[domain.SourceApps],
		Secondary:   secondaryService,
		Engines:     engineService,
		Answer:      answerService,
		Preferences: preferenceService,
		Settings:    settingsService,
		Actions:     actionService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	// The TUI owns the terminal; log lines would corrupt the screen.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// startScheduler runs background refreshes until the returned stop is called.
func startScheduler(ctx context.Context) func() {
	if schedulerService == nil {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := schedulerService.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("scheduler stopped: %v", err)
		}
	}()

	return func() {
		if err := schedulerService.Stop(); err != nil {
			logger.Warn("scheduler stop: %v", err)
		}
		<-done
	}
}
