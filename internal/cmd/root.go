package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for srcscan
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srcscan",
		Short: "Recursive keyword scanner for source trees",
		Long: `srcscan walks a directory tree, selects source files by extension
(.py and .pl by default) and reports every line that contains a keyword.

Matches are printed to stdout and written to a result log, one per line:
  <path> (<line>): <text>

Configuration is loaded from .srcscan.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// main prints the error; silence usage and cobra's own copy
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewFilesCommand())

	return cmd
}
