//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // HOME, holds .local/share/applications
	SystemDir string // stands in for /usr/share/applications
	BinDir    string // holds the fake registry command
	LogFile   string // every registry invocation is appended here
}

// setupTestEnv creates isolated temp directories, points HOME and
// MIMEPICK_CONFIG at them, and installs a fake xdg-mime that records its
// arguments. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		SystemDir: t.TempDir(),
		BinDir:    t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("MIMEPICK_CONFIG", filepath.Join(env.HomeDir, ".mimepick", "config.yaml"))

	writeFile(t, filepath.Join(env.BinDir, "xdg-mime"), "#!/bin/sh\necho \"$@\" >> "+env.LogFile+"\n")
	if err := os.Chmod(filepath.Join(env.BinDir, "xdg-mime"), 0755); err != nil {
		t.Fatalf("chmod fake xdg-mime: %v", err)
	}

	return env
}

// userDir returns the per-user application directory under HomeDir.
func (e *testEnv) userDir() string {
	return filepath.Join(e.HomeDir, ".local", "share", "applications")
}

// registryCommand returns the fake registry's path.
func (e *testEnv) registryCommand() string {
	return filepath.Join(e.BinDir, "xdg-mime")
}

// calls returns the recorded registry invocations, one per line.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", e.LogFile, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// writeDesktop writes a desktop entry declaring mimes under dir.
func writeDesktop(t *testing.T, dir, name, mimes string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeFile(t, path, "[Desktop Entry]\nType=Application\nName="+name+"\nMimeType="+mimes+"\n")
	return path
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
