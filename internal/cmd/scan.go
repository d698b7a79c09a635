package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/srcscan/internal/config"
	"github.com/harrison/srcscan/internal/logger"
	"github.com/harrison/srcscan/internal/scanner"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Report every line containing a keyword",
		Long: `Scan walks the root directory (default ".") recursively, reads every
file with a matching extension and reports each line that contains the
keyword as a literal, case-sensitive substring.

The result log (default result.log) is truncated at the start of the run.
Each match is written to it and echoed to stdout as it is found. Any I/O
failure stops the scan; matches found before the failure remain in the log.

Examples:
  # Search the current directory for TODO markers
  srcscan scan -k TODO

  # Search another tree, Python only, custom log
  srcscan scan ~/src/project -k deprecated -e .py -o deprecated.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringP("keyword", "k", "", "Literal substring to search for (required unless set in config)")
	cmd.Flags().StringP("output", "o", "", "Result log path (default: result.log)")
	addTraversalFlags(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return runScanWithOutput(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runScanWithOutput runs a scan with custom output writers (for testing)
func runScanWithOutput(cfg *config.ScanConfig, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	diag := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	if _, err := scanner.Run(cfg, stdout, diag); err != nil {
		diag.LogDebug(fmt.Sprintf("scan aborted: %v", err))
		return err
	}

	return nil
}
