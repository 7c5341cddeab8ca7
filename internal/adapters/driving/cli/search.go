package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

var (
	searchLimit         int
	searchJSON          bool
	searchSources       []string
	searchNoSuggestions bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search apps, contacts, files and settings",
	Long: `Ranks every enabled source for the query.

Apps match on nickname, prefix, word prefix and substring, with a fuzzy
fallback for typos. When nothing matches locally, web suggestions are
fetched. A query that starts with an engine shortcut such as "yt" is
routed to that engine.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results per source (0 = settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVarP(&searchSources, "source", "s", nil,
		"restrict to sources (apps, contacts, files, settings)")
	searchCmd.Flags().BoolVar(&searchNoSuggestions, "no-suggestions", false, "skip web suggestions")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search: %w", errNotConfigured)
	}

	opts := domain.SearchOptions{
		Limit:           searchLimit,
		SkipSuggestions: searchNoSuggestions,
	}
	for _, s := range searchSources {
		kind := domain.SourceKind(strings.ToLower(strings.TrimSpace(s)))
		if !kind.IsValid() {
			return fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, s)
		}
		opts.Sources = append(opts.Sources, kind)
	}

	report, err := searchService.Search(cmd.Context(), strings.Join(args, " "), opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, report)
	}
	outputSearchReport(cmd, report)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, report *domain.SearchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchReport(cmd *cobra.Command, report *domain.SearchReport) {
	if report.Shortcut != nil {
		cmd.Printf("Shortcut: %s -> %s\n\n", report.Shortcut.Code, report.Shortcut.Engine.DisplayName())
	}

	printMatches(cmd, "Apps", report.Apps)
	printMatches(cmd, "Contacts", report.Secondary.Contacts)
	printMatches(cmd, "Files", report.Secondary.Files)
	printMatches(cmd, "Settings", report.Secondary.Settings)

	if len(report.Apps)+report.Secondary.Total() == 0 {
		cmd.Println("No results found.")
		cmd.Println()
	}

	if len(report.Suggestions) > 0 {
		cmd.Println("Suggestions:")
		for _, s := range report.Suggestions {
			cmd.Printf("  %s\n", s)
		}
		cmd.Println()
	}

	if len(report.EngineURLs) > 0 {
		cmd.Println("Search the web:")
		for _, u := range report.EngineURLs {
			cmd.Printf("  %-14s %s\n", u.Engine.DisplayName(), u.URL)
		}
	}
}

func printMatches(cmd *cobra.Command, title string, matches []domain.Match) {
	if len(matches) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for i := range matches {
		m := matches[i]
		label := m.Tier.String()
		if m.IsFuzzy {
			label = fmt.Sprintf("fuzzy %.0f", m.Score)
		}
		cmd.Printf("  [%d] %s (%s)\n", i+1, m.Candidate.DisplayText, label)
		if m.Candidate.Detail != "" {
			cmd.Printf("      %s\n", m.Candidate.Detail)
		}
	}
	cmd.Println()
}
