package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

var engineDomain string

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Inspect web engines and shortcuts",
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enabled engines and their shortcut codes",
	Args:  cobra.NoArgs,
	RunE:  runEnginesList,
}

var enginesURLCmd = &cobra.Command{
	Use:   "url [engine] [query]",
	Short: "Print the search URL for a query",
	Long: `Prints the URL the engine would open for the query.
A blank query gives the engine's home page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnginesURL,
}

var enginesShortcutCmd = &cobra.Command{
	Use:   "shortcut [engine] [code]",
	Short: "Set an engine's shortcut code",
	Long: `Sets the code that routes "<code> <query>" to the engine.
Codes are lowercased and stripped to letters and digits, need at least
two characters, and must not be taken or be a prefix of another code.`,
	Args: cobra.ExactArgs(2),
	RunE: runEnginesShortcut,
}

func init() {
	enginesURLCmd.Flags().StringVar(&engineDomain, "domain", "", "domain override, e.g. co.uk")
	enginesCmd.AddCommand(enginesListCmd, enginesURLCmd, enginesShortcutCmd)
	rootCmd.AddCommand(enginesCmd)
}

func runEnginesList(cmd *cobra.Command, _ []string) error {
	if engineService == nil {
		return fmt.Errorf("engines: %w", errNotConfigured)
	}

	shortcuts := engineService.ActiveShortcuts()
	def := engineService.DefaultEngine()
	for _, e := range engineService.EnabledEngines() {
		marker := " "
		if e.Engine == def {
			marker = "*"
		}
		code := shortcuts[e.Engine]
		if code == "" {
			code = "-"
		}
		cmd.Printf("%s %-14s %-5s %s\n", marker, e.Name, code, e.Engine)
	}
	return nil
}

func runEnginesURL(cmd *cobra.Command, args []string) error {
	if engineService == nil {
		return fmt.Errorf("engines: %w", errNotConfigured)
	}
	engine, err := parseEngine(args[0])
	if err != nil {
		return err
	}

	u, err := engineService.BuildSearchURL(strings.Join(args[1:], " "), engine, engineDomain)
	if err != nil {
		return err
	}
	cmd.Println(u)
	return nil
}

func runEnginesShortcut(cmd *cobra.Command, args []string) error {
	if engineService == nil {
		return fmt.Errorf("engines: %w", errNotConfigured)
	}
	engine, err := parseEngine(args[0])
	if err != nil {
		return err
	}
	if err := engineService.SetShortcut(engine, args[1]); err != nil {
		return fmt.Errorf("set shortcut: %w", err)
	}
	cmd.Printf("%s shortcut set\n", engine.DisplayName())
	return nil
}

func parseEngine(name string) (domain.SearchEngine, error) {
	engine := domain.SearchEngine(strings.ToLower(strings.TrimSpace(name)))
	if !engine.IsValid() {
		return "", fmt.Errorf("%w: engine %q", domain.ErrUnsupportedType, name)
	}
	return engine, nil
}
