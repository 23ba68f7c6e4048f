package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mimepick/mimepick/internal/associations"
	"github.com/mimepick/mimepick/internal/dispatch"
	"github.com/mimepick/mimepick/internal/locator"
	"github.com/mimepick/mimepick/internal/resolver"
	"github.com/mimepick/mimepick/internal/selector"
	"github.com/mimepick/mimepick/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	applyOnly   []string
	applyDryRun bool
	applyPlain  bool
)

// errNotInteractive is returned when the prompt has no terminal to draw on.
var errNotInteractive = errors.New("stderr must be a terminal (use --plain to answer on stdin)")

func init() {
	rootCmd.Flags().StringArrayVar(&applyOnly, "only", nil, "Only resolve MIME types matching this glob, e.g. 'text/*' (repeatable)")
	rootCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the registry commands instead of running them")
	rootCmd.Flags().BoolVar(&applyPlain, "plain", false, "Use a numbered menu read from stdin instead of the interactive list")
}

func runApply(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())

	if !applyPlain && !terminal.IsInteractive(os.Stderr) {
		return errNotInteractive
	}

	// The list prompt hides the cursor and puts stdin in raw mode while it
	// runs. Put both back on every way out.
	guard := terminal.NewGuard(os.Stderr, os.Stdin, s.log)
	defer guard.Restore()
	stop := guard.Watch(os.Exit)
	defer stop()

	m, err := discover(s).Filter(applyOnly)
	if err != nil {
		return fmt.Errorf("invalid --only pattern: %w", err)
	}

	var sel resolver.Selector = &selector.List{Out: os.Stderr}
	if applyPlain {
		sel = selector.NewNumbered(os.Stdin, os.Stderr)
	}

	registry := dispatch.NewXDGMime(s.settings.RegistryCommand, s.log)
	var sink resolver.Sink = registry
	if applyDryRun {
		sink = &dispatch.DryRun{Command: registry, W: cmd.OutOrStdout()}
	}

	sum, err := resolver.New(sel, sink, s.log).Run(cmd.Context(), m)
	if err != nil {
		return err
	}

	s.log.Infof("Done: %d assigned automatically, %d chosen, %d skipped, %d failed.",
		sum.Auto, sum.Chosen, sum.Skipped, sum.Failed)
	return nil
}

// discover runs the locator and aggregator with the session's settings.
func discover(s *session) *associations.Map {
	roots := locator.Roots(locator.RootOptions{
		SystemDir: s.settings.SystemDir,
		UserDir:   s.settings.UserDir,
		Extra:     append(append([]string{}, s.settings.ExtraDirs...), flagDirs...),
	}, s.log)
	s.log.Debugf("Scanning %v", roots)

	m := associations.Aggregate(
		locator.Locate(roots, s.settings.Extension),
		associations.Options{Section: s.settings.Section, MimeKey: s.settings.MimeKey},
		s.log,
	)
	s.log.Infof("Found %d total options for %d total MIME types.", m.Total(), m.Len())
	return m
}
