package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Numbered presents a numbered menu and reads the answer line by line.
// A number selects, an empty line or "q" abandons, and invalid input
// re-prompts. End of input is an error.
type Numbered struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewNumbered returns a Numbered reading from r and writing menus to w.
func NewNumbered(r io.Reader, w io.Writer) *Numbered {
	return &Numbered{reader: bufio.NewReader(r), w: w}
}

// Select presents items and returns the chosen index.
func (n *Numbered) Select(ctx context.Context, prompt string, items []string) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, fmt.Errorf("nothing to select")
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		fmt.Fprintf(n.w, "\n%s\n", prompt)
		for i, item := range items {
			fmt.Fprintf(n.w, "  %d) %s\n", i+1, item)
		}
		fmt.Fprintf(n.w, "Enter number [1-%d]: ", len(items))

		line, err := n.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return 0, false, fmt.Errorf("reading selection: %w", err)
		}

		text := strings.TrimSpace(line)
		if text == "" || text == "q" {
			return 0, false, nil
		}

		num, convErr := strconv.Atoi(text)
		if convErr != nil || num < 1 || num > len(items) {
			fmt.Fprintf(n.w, "invalid selection %q: choose 1-%d\n", text, len(items))
			if err != nil {
				// The bad answer was the last thing on the stream.
				return 0, false, fmt.Errorf("reading selection: %w", err)
			}
			continue
		}

		return num - 1, true, nil
	}
}
