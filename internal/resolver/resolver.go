// Package resolver turns an association map into one decision per MIME type
// and hands each decision to the registry sink, one type at a time.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mimepick/mimepick/internal/associations"
	"github.com/mimepick/mimepick/internal/dispatch"
	"github.com/sirupsen/logrus"
)

// ErrFatal marks errors that must end the whole run: the prompt can no
// longer be read, or the registry process died abnormally.
var ErrFatal = errors.New("fatal")

// Selector asks the operator to choose one of items. ok is false when the
// operator declined to choose.
type Selector interface {
	Select(ctx context.Context, prompt string, items []string) (index int, ok bool, err error)
}

// Sink persists one handler choice.
type Sink interface {
	SetDefault(ctx context.Context, handler, mime string) error
}

// Kind records how a decision was reached.
type Kind int

const (
	// Auto: a single candidate, chosen without asking.
	Auto Kind = iota
	// Chosen: picked by the operator.
	Chosen
	// Skipped: the operator declined, nothing is dispatched.
	Skipped
	// Empty: no candidates at all, nothing is dispatched.
	Empty
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case Chosen:
		return "chosen"
	case Skipped:
		return "skipped"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Decision pairs a MIME type with its chosen handler.
type Decision struct {
	Mime    string
	Handler string
	Kind    Kind
}

// Dispatchable reports whether the decision names a handler.
func (d Decision) Dispatchable() bool {
	return d.Kind == Auto || d.Kind == Chosen
}

// Summary counts the outcomes of a run.
type Summary struct {
	Auto    int
	Chosen  int
	Skipped int
	// Failed counts empty candidate lists and registry commands that
	// exited non-zero.
	Failed int
}

// Resolver walks the map and dispatches decisions.
type Resolver struct {
	selector Selector
	sink     Sink
	log      logrus.FieldLogger
}

// New returns a Resolver.
func New(selector Selector, sink Sink, log logrus.FieldLogger) *Resolver {
	return &Resolver{selector: selector, sink: sink, log: log}
}

// Run decides and dispatches every entry of m in order. It stops at the
// first fatal error, which wraps ErrFatal; per-type failures are logged
// and counted instead.
func (r *Resolver) Run(ctx context.Context, m *associations.Map) (Summary, error) {
	var sum Summary
	for mime, programs := range m.All() {
		d, err := r.Decide(ctx, mime, programs)
		if err != nil {
			return sum, err
		}

		switch d.Kind {
		case Empty:
			sum.Failed++
			continue
		case Skipped:
			sum.Skipped++
			continue
		}

		if err := r.Apply(ctx, d); err != nil {
			if errors.Is(err, ErrFatal) {
				return sum, err
			}
			r.log.Error(err)
			sum.Failed++
			continue
		}

		if d.Kind == Auto {
			sum.Auto++
		} else {
			sum.Chosen++
		}
	}
	return sum, nil
}

// Decide picks a handler for mime: automatically for one candidate, via
// the selector for several. Only a broken selector yields an error.
func (r *Resolver) Decide(ctx context.Context, mime string, programs []string) (Decision, error) {
	switch len(programs) {
	case 0:
		r.log.Errorf("There's an empty list of programs for the type %q!", mime)
		return Decision{Mime: mime, Kind: Empty}, nil
	case 1:
		r.log.Infof("Automatically selecting the only option (%s) for type %q.", programs[0], mime)
		return Decision{Mime: mime, Handler: programs[0], Kind: Auto}, nil
	}

	prompt := fmt.Sprintf("Select the handler for %q. (ESC or q to skip)", mime)
	index, ok, err := r.selector.Select(ctx, prompt, programs)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: selecting handler for %s: %w", ErrFatal, mime, err)
	}
	if !ok {
		r.log.Infof("Skipping type %s", mime)
		return Decision{Mime: mime, Kind: Skipped}, nil
	}
	if index < 0 || index >= len(programs) {
		return Decision{}, fmt.Errorf("%w: selection %d out of range for %s", ErrFatal, index, mime)
	}
	return Decision{Mime: mime, Handler: programs[index], Kind: Chosen}, nil
}

// Apply sends a decision to the sink. A non-zero exit is returned as is
// (recoverable); anything else from the sink is wrapped in ErrFatal.
func (r *Resolver) Apply(ctx context.Context, d Decision) error {
	if !d.Dispatchable() {
		return nil
	}

	err := r.sink.SetDefault(ctx, d.Handler, d.Mime)
	if err == nil {
		return nil
	}

	var exitErr *dispatch.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFatal, err)
}
