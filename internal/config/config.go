package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeBatch = "batch"
	ModeStdio = "stdio"

	// Default values
	DefaultOutputDir     = "./partners_xlsx"
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultMinSimilarity = 0.75
)

// DefaultSpecialCaseLabels lists document labels eligible for the
// special-case provider-table matcher out of the box.
var DefaultSpecialCaseLabels = []string{"nevada"}

// Config holds all configuration for the partner-table extractor
type Config struct {
	// Execution mode: "batch" processes a directory, "stdio" serves the
	// extraction tools over MCP standard I/O
	Mode string

	// Input/output locations
	InputDirectory  string
	OutputDirectory string

	// Extraction configuration
	MaxFileSize       int64 // Maximum PDF file size in bytes
	Workers           int   // Concurrent documents in batch mode
	MinSimilarity     float64
	SpecialCaseLabels []string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeBatch,
		InputDirectory:    currentDir,
		OutputDirectory:   DefaultOutputDir,
		MaxFileSize:       DefaultMaxFileSize,
		Workers:           runtime.NumCPU(),
		MinSimilarity:     DefaultMinSimilarity,
		SpecialCaseLabels: DefaultSpecialCaseLabels,
		Version:           "1.0.0",
		ServerName:        "beadscan",
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("BEADSCAN")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.InputDirectory)
	viper.SetDefault("out", cfg.OutputDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("minsimilarity", cfg.MinSimilarity)
	viper.SetDefault("speciallabels", cfg.SpecialCaseLabels)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Execution mode: 'batch' to process a directory, 'stdio' for MCP standard I/O")
	pflag.String("dir", cfg.InputDirectory, "Directory containing input PDF files")
	pflag.String("out", cfg.OutputDirectory, "Directory for output workbooks")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("workers", cfg.Workers, "Concurrent documents in batch mode")
	pflag.Float64("minsimilarity", cfg.MinSimilarity, "Fuzzy header match threshold (0-1)")
	pflag.StringSlice("speciallabels", cfg.SpecialCaseLabels,
		"Document labels eligible for the special-case provider-table matcher")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("minsimilarity", pflag.Lookup("minsimilarity"))
	_ = viper.BindPFlag("speciallabels", pflag.Lookup("speciallabels"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nbeadscan - extract partner tables from BEAD program PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # batch mode over the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --out=./xlsx # batch mode with explicit directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                     # MCP server over standard I/O\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_MODE           Execution mode\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_DIR            Input PDF directory\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_OUT            Output workbook directory\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_MAXFILESIZE    Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_WORKERS        Concurrent documents\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_MINSIMILARITY  Fuzzy header match threshold\n")
		fmt.Fprintf(os.Stderr, "  BEADSCAN_SPECIALLABELS  Special-case document labels\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputDirectory = viper.GetString("dir")
	cfg.OutputDirectory = viper.GetString("out")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Workers = viper.GetInt("workers")
	cfg.MinSimilarity = viper.GetFloat64("minsimilarity")
	cfg.SpecialCaseLabels = viper.GetStringSlice("speciallabels")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeStdio {
		return errors.New("mode must be either 'batch' or 'stdio'")
	}

	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}
	if _, err := os.Stat(c.InputDirectory); err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDirectory, err)
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.MinSimilarity <= 0 || c.MinSimilarity > 1 {
		return errors.New("minimum similarity must be in (0, 1]")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsBatchMode returns true when running as a directory batch processor
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsStdioMode returns true when serving tools over MCP standard I/O
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputDirectory: %s, OutputDirectory: %s, LogLevel: %s, MaxFileSize: %d, Workers: %d}",
		c.Mode, c.InputDirectory, c.OutputDirectory, c.LogLevel, c.MaxFileSize, c.Workers)
}