package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/srcscan/internal/fileutil"
	"github.com/harrison/srcscan/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".srcscan.yaml"

// Traversal error policies
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// ScanConfig represents srcscan configuration options
type ScanConfig struct {
	// Root is the directory the recursive scan starts from
	Root string `yaml:"root"`

	// Keyword is the literal, case-sensitive substring to search for
	Keyword string `yaml:"keyword"`

	// OutputPath is the result log location (truncated at the start of a run)
	OutputPath string `yaml:"output_path"`

	// Extensions selects candidate files by name suffix
	Extensions []string `yaml:"extensions"`

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// OnError decides what an unreadable directory does: abort or skip
	OnError string `yaml:"on_error"`
}

// DefaultConfig returns a ScanConfig with sensible default values.
// Keyword has no default and must be supplied.
func DefaultConfig() *ScanConfig {
	return &ScanConfig{
		Root:       ".",
		Keyword:    "",
		OutputPath: "result.log",
		Extensions: append([]string(nil), fileutil.DefaultExtensions...),
		LogLevel:   "info",
		OnError:    OnErrorAbort,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*ScanConfig, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg ScanConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.Root != "" {
		cfg.Root = fileCfg.Root
	}
	if fileCfg.Keyword != "" {
		cfg.Keyword = fileCfg.Keyword
	}
	if fileCfg.OutputPath != "" {
		cfg.OutputPath = fileCfg.OutputPath
	}
	if len(fileCfg.Extensions) > 0 {
		cfg.Extensions = fileCfg.Extensions
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.OnError != "" {
		cfg.OnError = fileCfg.OnError
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .srcscan.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*ScanConfig, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigFile))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *ScanConfig) MergeWithFlags(root, keyword, outputPath *string, extensions []string, logLevel, onError *string) {
	if root != nil {
		c.Root = *root
	}
	if keyword != nil {
		c.Keyword = *keyword
	}
	if outputPath != nil {
		c.OutputPath = *outputPath
	}
	if extensions != nil {
		c.Extensions = extensions
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if onError != nil {
		c.OnError = *onError
	}
}

// Normalize lowercases enum fields and gives every extension a leading dot.
func (c *ScanConfig) Normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.OnError = strings.ToLower(strings.TrimSpace(c.OnError))
	c.Extensions = fileutil.NormalizeExtensions(c.Extensions)
}

// SkipErrors reports whether unreadable directories are skipped.
func (c *ScanConfig) SkipErrors() bool {
	return c.OnError == OnErrorSkip
}

// Validate validates the configuration values for a scan.
// Returns an error if any values are invalid
func (c *ScanConfig) Validate() error {
	if err := c.ValidateTraversal(); err != nil {
		return err
	}

	if c.Keyword == "" {
		return fmt.Errorf("keyword cannot be empty")
	}
	if strings.ContainsAny(c.Keyword, "\r\n") {
		return fmt.Errorf("keyword cannot contain line breaks")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path cannot be empty")
	}

	return nil
}

// ValidateTraversal validates only the fields used to enumerate candidates.
func (c *ScanConfig) ValidateTraversal() error {
	if c.Root == "" {
		return fmt.Errorf("root cannot be empty")
	}

	if len(fileutil.NormalizeExtensions(c.Extensions)) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	switch strings.ToLower(c.OnError) {
	case OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("invalid on_error %q, must be one of: %s, %s", c.OnError, OnErrorAbort, OnErrorSkip)
	}

	return nil
}
