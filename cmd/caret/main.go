package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"caret/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "caret",
	Short: "Clang-style source diagnostic renderer",
	Long:  `caret renders source-anchored diagnostics with ^/~ underlining`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
