package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

var (
	appsSource  string
	appsScope   string
	appsPinned  bool
	appsClear   bool
	appsExecute bool
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage launcher items",
	Long: `List, hide, pin, nickname and launch items.

Items are apps by default; use --source to manage contacts, files or
settings shortcuts the same way.`,
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available items",
	Args:  cobra.NoArgs,
	RunE:  runAppsList,
}

var appsHideCmd = &cobra.Command{
	Use:   "hide [id]",
	Short: "Hide an item from results or suggestions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], func(p driving.PreferenceService, kind domain.SourceKind, id string) error {
			return p.Hide(cmd.Context(), kind, domain.HiddenScope(appsScope), id)
		}, "Hidden")
	},
}

var appsUnhideCmd = &cobra.Command{
	Use:   "unhide [id]",
	Short: "Show a hidden item again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], func(p driving.PreferenceService, kind domain.SourceKind, id string) error {
			return p.Unhide(cmd.Context(), kind, domain.HiddenScope(appsScope), id)
		}, "Unhidden")
	},
}

var appsPinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Pin an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], func(p driving.PreferenceService, kind domain.SourceKind, id string) error {
			return p.Pin(cmd.Context(), kind, id)
		}, "Pinned")
	},
}

var appsUnpinCmd = &cobra.Command{
	Use:   "unpin [id]",
	Short: "Unpin an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withItem(cmd, args[0], func(p driving.PreferenceService, kind domain.SourceKind, id string) error {
			return p.Unpin(cmd.Context(), kind, id)
		}, "Unpinned")
	},
}

var appsNicknameCmd = &cobra.Command{
	Use:   "nickname [id] [nickname]",
	Short: "Set or clear an item's nickname",
	Long: `Sets a nickname. A query contained in the nickname ranks the item
above every other match. Use --clear to remove it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAppsNickname,
}

var appsLaunchCmd = &cobra.Command{
	Use:   "launch [id]",
	Short: "Record a launch and print the item's target",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppsLaunch,
}

func init() {
	appsCmd.PersistentFlags().StringVarP(&appsSource, "source", "s", string(domain.SourceApps),
		"source the item belongs to")
	appsListCmd.Flags().BoolVar(&appsPinned, "pinned", false, "list pinned items only")
	for _, c := range []*cobra.Command{appsHideCmd, appsUnhideCmd} {
		c.Flags().StringVar(&appsScope, "scope", string(domain.HiddenFromResults),
			"hide from \"results\" or \"suggestions\"")
	}
	appsNicknameCmd.Flags().BoolVar(&appsClear, "clear", false, "remove the nickname")
	appsLaunchCmd.Flags().BoolVarP(&appsExecute, "exec", "x", false, "start the target as well")

	appsCmd.AddCommand(appsListCmd, appsHideCmd, appsUnhideCmd, appsPinCmd,
		appsUnpinCmd, appsNicknameCmd, appsLaunchCmd)
	rootCmd.AddCommand(appsCmd)
}

func runAppsList(cmd *cobra.Command, _ []string) error {
	m, err := manager(appsSource)
	if err != nil {
		return err
	}

	var items []domain.Candidate
	if appsPinned {
		items = m.Pinned(cmd.Context(), nil)
	} else {
		items = m.Available(cmd.Context())
	}

	if len(items) == 0 {
		cmd.Println("No items.")
		return nil
	}
	for i := range items {
		c := items[i]
		name := c.DisplayText
		if c.Nickname != "" {
			name = fmt.Sprintf("%s [%s]", name, c.Nickname)
		}
		cmd.Printf("  %s\n", name)
		cmd.Printf("      ID: %s\n", c.ID)
	}
	return nil
}

func runAppsNickname(cmd *cobra.Command, args []string) error {
	nickname := ""
	if len(args) == 2 {
		nickname = args[1]
	}
	if !appsClear && strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("%w: nickname required (or use --clear)", domain.ErrInvalidInput)
	}

	return withItem(cmd, args[0], func(p driving.PreferenceService, kind domain.SourceKind, id string) error {
		if appsClear {
			return p.ClearNickname(cmd.Context(), kind, id)
		}
		return p.SetNickname(cmd.Context(), kind, id, nickname)
	}, "Updated")
}

func runAppsLaunch(cmd *cobra.Command, args []string) error {
	m, err := manager(appsSource)
	if err != nil {
		return err
	}
	c, ok := m.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%s %q: %w", m.Source(), args[0], domain.ErrNotFound)
	}

	if preferenceService != nil {
		if err := preferenceService.RecordLaunch(cmd.Context(), m.Source(), c.ID); err != nil {
			return fmt.Errorf("record launch: %w", err)
		}
	}

	cmd.Println(c.Target)
	if appsExecute {
		if actionService == nil {
			return fmt.Errorf("launch: %w", errNotConfigured)
		}
		if err := actionService.Open(cmd.Context(), m.Source(), c.Target); err != nil {
			return fmt.Errorf("launch %s: %w", c.DisplayText, err)
		}
	}
	return nil
}

// withItem resolves the --source flag and applies a preference mutation.
func withItem(
	cmd *cobra.Command,
	id string,
	apply func(p driving.PreferenceService, kind domain.SourceKind, id string) error,
	done string,
) error {
	if preferenceService == nil {
		return fmt.Errorf("preferences: %w", errNotConfigured)
	}
	kind := domain.SourceKind(appsSource)
	if !kind.IsValid() {
		return fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, appsSource)
	}
	if err := apply(preferenceService, kind, id); err != nil {
		return err
	}
	cmd.Printf("%s %s\n", done, id)
	return nil
}
