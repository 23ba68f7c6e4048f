package locator

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Entry is a discovered metadata file. Path doubles as the handler identifier.
type Entry struct {
	Path string
}

// Locate walks every root in order and yields the non-directory entries
// whose name is a non-empty stem followed by ext. Errors for individual entries (permission denied, dangling
// symlinks, a missing root) are dropped. Breaking out of the range loop
// stops the walk.
func Locate(roots []string, ext string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, root := range roots {
			stopped := false
			_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil // skip inaccessible entries
				}
				if d.IsDir() || !hasExtension(d.Name(), ext) {
					return nil
				}
				if !yield(Entry{Path: path}) {
					stopped = true
					return fs.SkipAll
				}
				return nil
			})
			if stopped {
				return
			}
		}
	}
}

// hasExtension reports whether name ends in ext with a non-empty stem, so a
// file called just ".desktop" does not count.
func hasExtension(name, ext string) bool {
	return len(name) > len(ext) && strings.HasSuffix(name, ext)
}

// HomeFunc resolves the current user's home directory.
type HomeFunc func() (string, error)

// RootOptions selects the application directories to scan.
type RootOptions struct {
	// SystemDir is always scanned.
	SystemDir string
	// UserDir is joined to the home directory. Empty skips the per-user root.
	UserDir string
	// Extra roots are appended after the defaults.
	Extra []string
	// Home defaults to os.UserHomeDir.
	Home HomeFunc
}

// Roots builds the ordered root list: the system directory, then the
// per-user directory when the home directory resolves, then any extras.
// A home lookup failure is logged and otherwise ignored.
func Roots(opts RootOptions, log logrus.FieldLogger) []string {
	roots := []string{opts.SystemDir}

	if opts.UserDir != "" {
		home := opts.Home
		if home == nil {
			home = os.UserHomeDir
		}
		if dir, err := home(); err == nil && dir != "" {
			roots = append(roots, filepath.Join(dir, opts.UserDir))
		} else {
			log.Warn("Failed to find home directory!")
		}
	}

	return append(roots, opts.Extra...)
}
