// Package terminal holds the small amount of terminal state the CLI cares
// about: whether stderr is interactive, and putting the terminal back the
// way it was however the process ends.
package terminal

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Guard restores the terminal: stdin's line mode as it was when the Guard
// was built, and cursor visibility on the output. Restore is idempotent, so
// it can be deferred on the normal path and also run from the signal
// watcher.
type Guard struct {
	cursor *termenv.Output // nil when the output is not a terminal
	tty    func() error    // nil when stdin is not a terminal
	log    logrus.FieldLogger
	once   sync.Once
}

// NewGuard snapshots in's terminal mode and prepares to show the cursor on
// out. Either side that is not a terminal is left alone.
func NewGuard(out, in *os.File, log logrus.FieldLogger) *Guard {
	var cursor io.Writer
	if IsInteractive(out) {
		cursor = out
	}

	var tty func() error
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		if state, err := term.GetState(fd); err == nil {
			tty = func() error { return term.Restore(fd, state) }
		} else {
			log.Debugf("Failed to read terminal state: %v", err)
		}
	}
	return newGuard(cursor, tty, log)
}

func newGuard(cursor io.Writer, tty func() error, log logrus.FieldLogger) *Guard {
	g := &Guard{tty: tty, log: log}
	if cursor != nil {
		g.cursor = termenv.NewOutput(cursor)
	}
	return g
}

// Restore puts the terminal back. Only the first call does anything.
func (g *Guard) Restore() {
	g.once.Do(func() {
		if g.tty != nil {
			if err := g.tty(); err != nil {
				g.log.Warnf("Failed to restore terminal mode: %v", err)
			}
		}
		if g.cursor != nil {
			g.cursor.ShowCursor()
		}
	})
}

// Watch restores the terminal and calls exit(1) when SIGINT or SIGTERM
// arrives. It must be the only handler for those signals while it runs.
// The returned func stops watching.
func (g *Guard) Watch(exit func(code int)) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	done := g.watch(ch, exit)
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func (g *Guard) watch(ch <-chan os.Signal, exit func(code int)) chan struct{} {
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			g.log.Errorf("Interrupted by %s", sig)
			g.Restore()
			exit(1)
		case <-done:
		}
	}()
	return done
}
