package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultCommand is the registry command used when none is configured.
const DefaultCommand = "xdg-mime"

// ErrSignaled is wrapped by errors for a registry process that was killed
// by a signal instead of exiting.
var ErrSignaled = errors.New("terminated by signal")

// ExitError reports a registry process that exited with a non-zero code.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with non-zero code %d", e.Command, e.Code)
}

// Command runs `<Name> <Prefix...> <handler> <mime>` for each decision.
type Command struct {
	Name   string
	Prefix []string
	Stdout io.Writer
	Stderr io.Writer
	Log    logrus.FieldLogger
}

// NewXDGMime returns a Command that runs `<name> default <handler> <mime>`
// with the child's output passed through to ours.
func NewXDGMime(name string, log logrus.FieldLogger) *Command {
	if name == "" {
		name = DefaultCommand
	}
	return &Command{
		Name:   name,
		Prefix: []string{"default"},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

// Argv returns the full argument vector for one invocation.
func (c *Command) Argv(handler, mime string) []string {
	argv := append([]string{c.Name}, c.Prefix...)
	return append(argv, handler, mime)
}

// SetDefault runs the registry command once and waits for it. A non-zero
// exit is reported as *ExitError. Death by signal wraps ErrSignaled. Any
// other error means the command could not be run at all.
func (c *Command) SetDefault(ctx context.Context, handler, mime string) error {
	argv := c.Argv(handler, mime)
	if c.Log != nil {
		c.Log.Infof("Running %s", quoteArgv(argv))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("running %s: %w", c.Name, err)
	}
	// ExitCode is -1 when the process did not exit normally.
	if code := exitErr.ExitCode(); code >= 0 {
		return &ExitError{Command: c.Name, Code: code}
	}
	return fmt.Errorf("%s was %w (%s)", c.Name, ErrSignaled, exitErr.String())
}

// DryRun prints each invocation instead of running it.
type DryRun struct {
	Command *Command
	W       io.Writer
}

// SetDefault writes the command line that would have been run.
func (d *DryRun) SetDefault(_ context.Context, handler, mime string) error {
	_, err := fmt.Fprintf(d.W, "would run: %s\n", quoteArgv(d.Command.Argv(handler, mime)))
	return err
}

// quoteArgv renders argv for a shell, single-quoting any argument that
// holds characters outside a conservative safe set.
func quoteArgv(argv []string) string {
	quoted := slices.Clone(argv)
	for i, arg := range quoted {
		if arg == "" || strings.IndexFunc(arg, unsafeShellRune) >= 0 {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
	}
	return strings.Join(quoted, " ")
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("._/+-=:@%,", r):
		return false
	}
	return true
}
