package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/srcscan/internal/config"
	"github.com/harrison/srcscan/internal/display"
	"github.com/harrison/srcscan/internal/logger"
	"github.com/harrison/srcscan/internal/scanner"
	"github.com/spf13/cobra"
)

// NewFilesCommand creates the files command
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files [root]",
		Short: "List the candidate files a scan would read",
		Long: `Files walks the root directory (default ".") with the same extension
filter and error policy as scan, and prints each candidate in traversal order:

  File #0: a.py
  File #1: lib/util.pl

No result log is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return listFilesWithOutput(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addTraversalFlags(cmd)

	return cmd
}

// listFilesWithOutput prints candidates with custom output writers (for testing)
func listFilesWithOutput(cfg *config.ScanConfig, stdout, stderr io.Writer) error {
	if err := cfg.ValidateTraversal(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	diag := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	// No result log is written, so nothing needs excluding
	listing := *cfg
	listing.OutputPath = ""

	result, err := scanner.New(&listing, stdout, diag).Candidates()
	if err != nil {
		return err
	}

	for i, file := range result.Files {
		fmt.Fprintf(stdout, "File #%d: %s\n", i, file)
	}

	if len(result.Skipped) > 0 {
		paths := make([]string, 0, len(result.Skipped))
		for _, s := range result.Skipped {
			paths = append(paths, s.Path)
		}
		display.SkippedEntries(paths).Display(diag.WriterFor("warn"), diag.ColorEnabled())
	}

	return nil
}
