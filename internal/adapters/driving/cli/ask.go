package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

var askCopy bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the direct-answer engine",
	Long: `Sends the question to the configured direct-answer API and prints the
reply. Transient failures are retried. Store a key first with
"sercha-launcher settings answer-key".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askCopy, "copy", "c", false, "copy the answer to the clipboard")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return fmt.Errorf("answer: %w", errNotConfigured)
	}

	state := answerService.Ask(cmd.Context(), strings.Join(args, " "))
	if state.Err != nil {
		if errors.Is(state.Err, domain.ErrAnswerUnavailable) {
			return fmt.Errorf("%w: set an API key with \"settings answer-key\"", state.Err)
		}
		return fmt.Errorf("ask failed: %w", state.Err)
	}
	cmd.Println(state.Answer)

	if askCopy {
		if actionService == nil {
			return fmt.Errorf("copy: %w", errNotConfigured)
		}
		if err := actionService.CopyToClipboard(cmd.Context(), state.Answer); err != nil {
			return fmt.Errorf("copy answer: %w", err)
		}
	}
	return nil
}
