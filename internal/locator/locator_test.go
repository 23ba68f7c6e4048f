package locator

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"testing"

	"github.com/mimepick/mimepick/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[Desktop Entry]\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func collect(roots []string) []string {
	var paths []string
	for e := range Locate(roots, ".desktop") {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestLocateFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.desktop"))
	writeFile(t, filepath.Join(root, "nested", "deeper", "b.desktop"))
	writeFile(t, filepath.Join(root, "readme.txt"))
	writeFile(t, filepath.Join(root, "c.desktop.bak"))
	writeFile(t, filepath.Join(root, ".desktop"))
	writeFile(t, filepath.Join(root, "nested", ".desktop"))
	if err := os.MkdirAll(filepath.Join(root, "dir.desktop"), 0755); err != nil {
		t.Fatal(err)
	}

	got := collect([]string{root})
	sort.Strings(got)
	want := []string{
		filepath.Join(root, "a.desktop"),
		filepath.Join(root, "nested", "deeper", "b.desktop"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Locate = %v, want %v", got, want)
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.desktop", true},
		{"..desktop", true},
		{".hidden.desktop", true},
		{".desktop", false},
		{"desktop", false},
		{"a.desktop~", false},
	}
	for _, tt := range tests {
		if got := hasExtension(tt.name, ".desktop"); got != tt.want {
			t.Errorf("hasExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLocateWalksRootsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "one.desktop"))
	writeFile(t, filepath.Join(second, "two.desktop"))

	got := collect([]string{first, second})
	want := []string{
		filepath.Join(first, "one.desktop"),
		filepath.Join(second, "two.desktop"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Locate = %v, want %v", got, want)
	}
}

func TestLocateSkipsMissingRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.desktop"))

	got := collect([]string{filepath.Join(root, "does-not-exist"), root})
	if len(got) != 1 || got[0] != filepath.Join(root, "a.desktop") {
		t.Errorf("Locate = %v, want only a.desktop", got)
	}
}

func TestLocateSkipsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.desktop"))
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.desktop"))
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	got := collect([]string{root})
	if !slices.Contains(got, filepath.Join(root, "ok.desktop")) {
		t.Errorf("expected ok.desktop despite unreadable sibling, got %v", got)
	}
	if slices.Contains(got, filepath.Join(locked, "hidden.desktop")) {
		t.Errorf("did not expect file from unreadable directory, got %v", got)
	}
}

func TestLocateStopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.desktop", "b.desktop", "c.desktop"} {
		writeFile(t, filepath.Join(root, name))
	}
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "d.desktop"))

	count := 0
	for range Locate([]string{root, other}, ".desktop") {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestRoots(t *testing.T) {
	tests := []struct {
		name     string
		opts     RootOptions
		want     []string
		wantWarn bool
	}{
		{
			name: "system and user",
			opts: RootOptions{
				SystemDir: "/usr/share/applications/",
				UserDir:   ".local/share/applications/",
				Home:      func() (string, error) { return "/home/op", nil },
			},
			want: []string{"/usr/share/applications/", "/home/op/.local/share/applications"},
		},
		{
			name: "home lookup fails",
			opts: RootOptions{
				SystemDir: "/usr/share/applications/",
				UserDir:   ".local/share/applications/",
				Home:      func() (string, error) { return "", errors.New("$HOME is not defined") },
			},
			want:     []string{"/usr/share/applications/"},
			wantWarn: true,
		},
		{
			name: "user dir disabled with extras",
			opts: RootOptions{
				SystemDir: "/usr/share/applications/",
				Extra:     []string{"/opt/apps"},
				Home: func() (string, error) {
					t.Fatal("home should not be consulted")
					return "", nil
				},
			},
			want: []string{"/usr/share/applications/", "/opt/apps"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			got := Roots(tt.opts, logger)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Roots = %v, want %v", got, tt.want)
			}
			warned := false
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.WarnLevel {
					warned = true
				}
			}
			if warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v", warned, tt.wantWarn)
			}
		})
	}
}

func TestRootsDefaultsToUserHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Roots(RootOptions{SystemDir: "/sys-apps", UserDir: "apps"}, logging.Discard())
	want := []string{"/sys-apps", filepath.Join(home, "apps")}
	if runtime.GOOS != "windows" && !reflect.DeepEqual(got, want) {
		t.Errorf("Roots = %v, want %v", got, want)
	}
}
