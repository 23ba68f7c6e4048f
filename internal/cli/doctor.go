package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/mimepick/mimepick/internal/config"
	"github.com/mimepick/mimepick/internal/locator"
	"github.com/mimepick/mimepick/internal/output"
	"github.com/mimepick/mimepick/internal/terminal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can record default handlers",
	Long: `Run diagnostic checks: the registry command is on PATH, stderr is a
terminal, and each application directory can be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.OutOrStdout(), sessionFrom(cmd.Context()), terminal.IsInteractive(os.Stderr))
	},
}

// runDoctor prints each check, with the scanned directories as a table,
// and fails if any check failed. Warnings do not fail the run.
func runDoctor(w io.Writer, s *session, interactive bool) error {
	failed := 0

	fmt.Fprintf(w, "Config: %s\n", config.FilePath())

	fmt.Fprintln(w, "Registry check:")
	if !checkBinary(w, s.settings.RegistryCommand) {
		failed++
	}

	fmt.Fprintln(w, "Terminal check:")
	if interactive {
		fmt.Fprintln(w, "  [ OK ] stderr is a terminal")
	} else {
		fmt.Fprintln(w, "  [WARN] stderr is not a terminal; only --plain will prompt")
	}

	fmt.Fprintln(w, "Directory check:")
	roots := locator.Roots(locator.RootOptions{
		SystemDir: s.settings.SystemDir,
		UserDir:   s.settings.UserDir,
		Extra:     append(append([]string{}, s.settings.ExtraDirs...), flagDirs...),
	}, s.log)
	table := output.NewTableData("Root", "Status", "Files", "Note")
	for _, root := range roots {
		row := checkRoot(root, s.settings.Extension)
		if row[1] == "FAIL" {
			failed++
		}
		table.AddRow(row...)
	}
	if err := output.PrintTable(w, table); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func checkBinary(w io.Writer, name string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return true
}

// checkRoot returns one table row describing root. A missing root is only
// a warning since the per-user directory often does not exist.
func checkRoot(root, ext string) []string {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return []string{root, "WARN", "-", "does not exist"}
	case err != nil:
		return []string{root, "FAIL", "-", err.Error()}
	case !info.IsDir():
		return []string{root, "FAIL", "-", "not a directory"}
	}

	if _, err := os.ReadDir(root); err != nil {
		return []string{root, "FAIL", "-", err.Error()}
	}

	n := 0
	for range locator.Locate([]string{root}, ext) {
		n++
	}
	return []string{root, "OK", strconv.Itoa(n), ""}
}
