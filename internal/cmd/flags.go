package cmd

import (
	"fmt"

	"github.com/harrison/srcscan/internal/config"
	"github.com/spf13/cobra"
)

// addTraversalFlags registers the flags shared by scan and files.
func addTraversalFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultConfigFile+")")
	cmd.Flags().StringArrayP("ext", "e", nil, "File extension to include, repeatable (default: .py, .pl)")
	cmd.Flags().String("log-level", "", "Diagnostic verbosity: trace, debug, info, warn, error")
	cmd.Flags().BoolP("verbose", "v", false, "Shorthand for --log-level debug")
	cmd.Flags().String("on-error", "", "Unreadable directories: abort or skip")
}

// loadConfig resolves defaults < config file < flags for the command.
// The optional positional argument is the root directory.
func loadConfig(cmd *cobra.Command, args []string) (*config.ScanConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.ScanConfig
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var root, keyword, output, logLevel, onError *string
	var extensions []string

	if len(args) > 0 {
		root = &args[0]
	}
	if f := cmd.Flags().Lookup("keyword"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("keyword")
		keyword = &v
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("output")
		output = &v
	}
	if cmd.Flags().Changed("ext") {
		extensions, _ = cmd.Flags().GetStringArray("ext")
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && logLevel == nil {
		v := "debug"
		logLevel = &v
	}
	if cmd.Flags().Changed("on-error") {
		v, _ := cmd.Flags().GetString("on-error")
		onError = &v
	}

	cfg.MergeWithFlags(root, keyword, output, extensions, logLevel, onError)
	cfg.Normalize()

	return cfg, nil
}
