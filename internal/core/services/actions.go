package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// command is one external program invocation.
type command struct {
	name string
	args []string
}

// ResultActionService opens and copies results with the desktop's own tools.
type ResultActionService struct {
	goos string
	run  func(ctx context.Context, c command) error
	copy func(text string) error
}

// NewResultActionService creates a result action service for this platform.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		goos: runtime.GOOS,
		run:  runCommand,
		copy: writeClipboard,
	}
}

// Open starts target for source.
func (s *ResultActionService) Open(ctx context.Context, source domain.SourceKind, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("%w: empty target", domain.ErrInvalidInput)
	}

	c, err := s.openCommand(source, target)
	if err != nil {
		return err
	}
	return s.run(ctx, c)
}

// CopyToClipboard copies text to the system clipboard.
func (s *ResultActionService) CopyToClipboard(_ context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("%w: nothing to copy", domain.ErrInvalidInput)
	}
	if err := s.copy(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

func (s *ResultActionService) openCommand(source domain.SourceKind, target string) (command, error) {
	if source == domain.SourceApps {
		if s.goos == osWindows {
			return command{name: "cmd", args: []string{"/c", target}}, nil
		}
		return command{name: "sh", args: []string{"-c", target}}, nil
	}

	target = openableTarget(target)
	switch s.goos {
	case osDarwin:
		return command{name: "open", args: []string{target}}, nil
	case osLinux:
		return command{name: "xdg-open", args: []string{target}}, nil
	case osWindows:
		return command{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", target}}, nil
	default:
		return command{}, fmt.Errorf("unsupported platform: %s", s.goos)
	}
}

// openableTarget converts file URIs to local paths; everything else
// (http, tel, mailto, settings commands) passes through.
func openableTarget(target string) string {
	if strings.HasPrefix(target, "file://") {
		return strings.TrimPrefix(target, "file://")
	}
	return target
}

// runCommand starts c detached. Launched programs outlive the launcher, so
// ctx only gates the start.
func runCommand(ctx context.Context, c command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return exec.Command(c.name, c.args...).Start() //nolint:gosec // targets come from the user's own desktop entries
}

func writeClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found (install wl-clipboard, xclip or xsel)",
			domain.ErrProviderUnavailable)
	}
	return clipboard.WriteAll(text)
}
