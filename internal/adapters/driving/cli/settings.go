package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage launcher settings",
	Long: `View and change ranking, sections, permissions, web suggestions,
engines and the direct-answer API.

Settings are addressed by dotted key, e.g. "search.result_limit".`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Changes one setting. Lists are comma separated.

Examples:
  sercha-launcher settings set search.result_limit 8
  sercha-launcher settings set permissions.contacts true
  sercha-launcher settings set engines.enabled google,youtube,wikipedia
  sercha-launcher settings set answer.provider ollama`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting's default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsAnswerKeyCmd = &cobra.Command{
	Use:   "answer-key",
	Short: "Store the direct-answer API key",
	Long:  `Prompts for the direct-answer API key without echoing it.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsAnswerKey,
}

var settingsAnswerCheckCmd = &cobra.Command{
	Use:   "answer-check",
	Short: "Check the direct-answer provider accepts the configuration",
	Args:  cobra.NoArgs,
	RunE:  runSettingsAnswerCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd,
		settingsKeysCmd, settingsAnswerKeyCmd, settingsAnswerCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Result limit: %d\n", settings.Search.ResultLimit)
	cmd.Printf("  Sort apps by usage: %t\n", settings.Search.SortAppsByUsage)
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	for _, kind := range domain.AllSources() {
		f := settings.Search.FuzzyFor(kind)
		cmd.Printf("  Fuzzy %s: %s (min %d, threshold %.0f)\n",
			kind, onOff(f.Enabled), f.MinQueryLength, f.MatchThreshold)
	}
	cmd.Println()

	cmd.Println("[Sections]")
	for _, kind := range domain.AllSources() {
		access := ""
		if !settings.Permissions.Granted(kind) {
			access = " (no permission)"
		}
		cmd.Printf("  %s: %s%s\n", kind, onOff(settings.Sections.Enabled(kind)), access)
	}
	cmd.Println()

	cmd.Println("[Suggestions]")
	cmd.Printf("  Enabled: %t\n", settings.Suggestions.Enabled)
	cmd.Printf("  Count: %d\n", settings.Suggestions.Count)
	cmd.Printf("  Endpoint: %s\n", settings.Suggestions.Endpoint)
	cmd.Println()

	cmd.Println("[Engines]")
	cmd.Printf("  Default: %s\n", settings.Engines.Default.DisplayName())
	names := make([]string, 0, len(settings.Engines.Enabled))
	for _, e := range settings.Engines.Enabled {
		names = append(names, string(e))
	}
	cmd.Printf("  Enabled: %s\n", strings.Join(names, ", "))
	cmd.Printf("  Shortcuts: %s\n", onOff(settings.Engines.ShortcutsEnabled))
	printEngineMap(cmd, "Shortcut", settings.Engines.Shortcuts)
	printEngineMap(cmd, "Domain", settings.Engines.Domains)
	cmd.Println()

	cmd.Println("[Direct Answer]")
	cmd.Printf("  Provider: %s\n", settings.Answer.Provider)
	cmd.Printf("  Endpoint: %s\n", orDefault(settings.Answer.Endpoint))
	cmd.Printf("  Model: %s\n", orDefault(settings.Answer.Model))
	if settings.Answer.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Answer.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !settings.Answer.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Providers]")
	cmd.Printf("  Desktop dirs: %s\n", strings.Join(settings.Providers.DesktopDirs, ", "))
	cmd.Printf("  Contacts: %s\n", orUnset(settings.Providers.ContactsPath))
	cmd.Printf("  File roots: %s\n", orUnset(strings.Join(settings.Providers.FileRoots, ", ")))
	cmd.Printf("  File depth: %d\n", settings.Providers.FileMaxDepth)
	cmd.Printf("  Settings command: %s\n", orUnset(settings.Providers.SettingsCommand))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	cmd.Printf("%s reset to default\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsAnswerKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("API key: ")
	key := readPassword(cmd.InOrStdin())
	cmd.Println()
	if key == "" {
		return fmt.Errorf("%w: empty API key", domain.ErrInvalidInput)
	}
	if err := settingsService.SetAnswerAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Println("API key saved.")
	return nil
}

func runSettingsAnswerCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.ValidateAnswerConfig(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrAnswerUnavailable) {
			return fmt.Errorf("%w. Run 'sercha-launcher settings answer-key' or set answer.provider", err)
		}
		return err
	}
	cmd.Println("Direct answer provider reachable.")
	return nil
}

func printEngineMap(cmd *cobra.Command, label string, m map[domain.SearchEngine]string) {
	keys := make([]string, 0, len(m))
	for e := range m {
		keys = append(keys, string(e))
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("  %s %s: %s\n", label, k, m[domain.SearchEngine(k)])
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	// Try to read password without echo
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func orDefault(s string) string {
	if s == "" {
		return "(provider default)"
	}
	return s
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
