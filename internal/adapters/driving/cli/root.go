// Package cli implements the sercha-launcher command line.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Options are the global flags a bootstrap needs before services exist.
type Options struct {
	// Verbose enables debug logging.
	Verbose bool

	// Ephemeral keeps settings and preferences in memory only.
	Ephemeral bool
}

// Services holds the driving ports the commands use.
type Services struct {
	Search      driving.SearchService
	Secondary   driving.SecondarySearch
	Engines     driving.EngineService
	Settings    driving.SettingsService
	Preferences driving.PreferenceService
	Answer      driving.AnswerService
	Scheduler   driving.Scheduler
	Actions     driving.ResultActionService

	// Sources holds one manager per source.
	Sources map[domain.SourceKind]driving.SourceSearch
}

// Bootstrap builds services from global options. The returned cleanup
// runs when the command finishes.
type Bootstrap func(opts Options) (*Services, func(), error)

var (
	searchService     driving.SearchService
	secondaryService  driving.SecondarySearch
	engineService     driving.EngineService
	settingsService   driving.SettingsService
	preferenceService driving.PreferenceService
	answerService     driving.AnswerService
	schedulerService  driving.Scheduler
	actionService     driving.ResultActionService
	sourceManagers    map[domain.SourceKind]driving.SourceSearch

	bootstrap Bootstrap
	cleanup   func()
	options   Options
)

var rootCmd = &cobra.Command{
	Use:   "sercha-launcher",
	Short: "Launcher search for apps, contacts, files and settings",
	Long: `sercha-launcher ranks installed applications, contacts, files and
system settings as you type, and hands anything else to a web engine.

Run "sercha-launcher tui" for the interactive launcher.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = prepare
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&options.Ephemeral, "ephemeral", false,
		"keep settings and preferences in memory only")
}

// SetVersion sets the version printed by "version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	secondaryService = s.Secondary
	engineService = s.Engines
	settingsService = s.Settings
	preferenceService = s.Preferences
	answerService = s.Answer
	schedulerService = s.Scheduler
	actionService = s.Actions
	sourceManagers = s.Sources
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.Execute()
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(options.Verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || !needsServices(cmd) || searchService != nil {
		return nil
	}
	svc, done, err := bootstrap(options)
	if err != nil {
		return fmt.Errorf("starting launcher: %w", err)
	}
	SetServices(svc)
	cleanup = done
	return nil
}

func needsServices(cmd *cobra.Command) bool {
	return cmd != versionCmd && cmd != rootCmd
}

// manager returns the manager for a source named on the command line.
func manager(name string) (driving.SourceSearch, error) {
	kind := domain.SourceKind(name)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, name)
	}
	m, ok := sourceManagers[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, domain.ErrNotFound)
	}
	return m, nil
}

var errNotConfigured = errors.New("service not configured")
