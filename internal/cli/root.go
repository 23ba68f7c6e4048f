package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mimepick/mimepick/internal/branding"
	"github.com/mimepick/mimepick/internal/config"
	"github.com/mimepick/mimepick/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagDirs     []string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scans the system and per-user application directories for desktop
entries, collects the MIME types each one declares, and asks you to pick a
default handler for every type that has more than one candidate. Types with a
single candidate are assigned automatically. Each choice is recorded with
` + "`xdg-mime default`" + `.

Press ESC or q at a prompt to leave that type unchanged.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that inspect or repair the config must work even when
		// the config file is broken.
		if cmd.Name() == "version" || (cmd.HasParent() && cmd.Parent().Name() == "config") {
			return nil
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		cmd.SetContext(withSession(cmd.Context(), s))
		return nil
	},
	RunE: runApply,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&flagDirs, "dir", nil, "Additional directory to scan for desktop files (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: error, warn, info, debug (overrides "+branding.EnvVar(config.KeyLog)+")")
	_ = viper.BindPFlag(config.KeyLog, rootCmd.PersistentFlags().Lookup("log-level"))
}

// session carries the per-run configuration and logger to commands.
type session struct {
	settings *config.Settings
	log      *logrus.Logger
}

type sessionKey struct{}

func withSession(ctx context.Context, s *session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) *session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionKey{}).(*session)
	return s
}

// newSession resolves configuration once and builds the logger from it.
func newSession() (*session, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(settings.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &session{settings: settings, log: log}, nil
}

// Execute runs the root command with build info injected via ldflags.
// Errors are reported on stderr here, once.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		if s := sessionFrom(cmd.Context()); s != nil {
			s.log.Error(err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
	}
	return err
}
