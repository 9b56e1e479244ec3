package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/beadscan/beadscan/internal/batch"
	"github.com/beadscan/beadscan/internal/config"
	"github.com/beadscan/beadscan/internal/document"
	"github.com/beadscan/beadscan/internal/extract"
	"github.com/beadscan/beadscan/internal/mcp"
	"github.com/beadscan/beadscan/internal/xlsx"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the execution mode
func setupLogging(cfg *config.Config) {
	// Always log to stderr; in stdio mode stdout carries the MCP protocol
	log.SetOutput(os.Stderr)
	if cfg.IsStdioMode() && !cfg.IsDebug() {
		log.SetOutput(os.NewFile(0, os.DevNull))
	}
	if cfg.IsBatchMode() {
		log.SetFlags(log.LstdFlags)
	}
}

// newService builds the extraction pipeline from configuration
func newService(cfg *config.Config) *extract.Service {
	return extract.NewService(extract.Options{
		Similarity:        extract.NewLevenshteinSimilarity(),
		MinSimilarity:     cfg.MinSimilarity,
		SpecialCaseLabels: cfg.SpecialCaseLabels,
	})
}

// runBatchMode processes every PDF in the input directory
func runBatchMode(ctx context.Context, cfg *config.Config, service *extract.Service, writer *xlsx.Writer) {
	validator := document.NewValidator(cfg.MaxFileSize)
	runner := batch.NewRunner(cfg.InputDirectory, cfg.Workers, validator, service, writer)
	runner.Verbose = cfg.IsDebug()

	summaries, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	succeeded := 0
	for _, s := range summaries {
		if s.Err == nil {
			succeeded++
		}
	}
	log.Printf("Processed %d document(s): %d with results, %d without",
		len(summaries), succeeded, len(summaries)-succeeded)
}

// runStdioMode serves the extraction tools over MCP standard I/O
func runStdioMode(ctx context.Context, cfg *config.Config, service *extract.Service, writer *xlsx.Writer) {
	server, err := mcp.NewServer(cfg, service, writer)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	service := newService(cfg)
	writer := xlsx.NewWriter(cfg.OutputDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsStdioMode() {
		runStdioMode(ctx, cfg, service, writer)
	} else {
		runBatchMode(ctx, cfg, service, writer)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("beadscan\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
