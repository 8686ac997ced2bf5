// Package autocomplete completes mod file names in the shell
package autocomplete

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// ModCompleter completes the archives in the mods folder
type ModCompleter struct {
	// Dir returns the mods folder
	Dir func() (string, error)
	// Scan lists the archives in a folder
	Scan func(dir string) ([]string, error)
}

// Complete returns all mods that start with toComplete, with their size as description
func (m *ModCompleter) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	dir, err := m.Dir()
	if err != nil {
		// we can't error here, so fall back to normal file completion
		return nil, cobra.ShellCompDirectiveDefault
	}
	names, _ := m.Scan(dir)

	sort.Strings(names)
	var matches []string
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			continue
		}
		description := ""
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
			description = lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Render(humanize.Bytes(uint64(info.Size())))
		}
		matches = append(matches, fmt.Sprintf("%s\t%s", name, description))
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// ValidArgs can be used as cobra.Command.ValidArgsFunction for commands
// that take mod files. Only the first n arguments are completed.
func (m *ModCompleter) ValidArgs(n int) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return m.Complete(toComplete)
	}
}
