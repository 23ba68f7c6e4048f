package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mimepick/mimepick/internal/associations"
	"github.com/mimepick/mimepick/internal/output"
	"github.com/spf13/cobra"
)

var (
	listOutput string
	listOnly   []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered MIME types and their candidate handlers",
	Long: `List every MIME type declared by the scanned desktop entries, with the
desktop files that declare it in discovery order. Nothing is changed and no
terminal is required.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table, json, yaml")
	listCmd.Flags().StringArrayVar(&listOnly, "only", nil, "Only list MIME types matching this glob (repeatable)")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one MIME type for display.
type listEntry struct {
	Mime     string   `json:"mime" yaml:"mime"`
	Handlers []string `json:"handlers" yaml:"handlers"`
}

type listEntries []listEntry

func (l listEntries) Headers() []string {
	return []string{"MIME type", "Count", "Handlers"}
}

func (l listEntries) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, e := range l {
		rows = append(rows, []string{e.Mime, strconv.Itoa(len(e.Handlers)), strings.Join(e.Handlers, ", ")})
	}
	return rows
}

func toListEntries(m *associations.Map) listEntries {
	entries := make(listEntries, 0, m.Len())
	for mime, handlers := range m.All() {
		entries = append(entries, listEntry{Mime: mime, Handlers: handlers})
	}
	return entries
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}

	m, err := discover(sessionFrom(cmd.Context())).Filter(listOnly)
	if err != nil {
		return fmt.Errorf("invalid --only pattern: %w", err)
	}

	if m.Len() == 0 && format == output.FormatTable {
		fmt.Fprintln(cmd.OutOrStdout(), "No MIME types found.")
		return nil
	}
	return output.Print(cmd.OutOrStdout(), format, toListEntries(m))
}
