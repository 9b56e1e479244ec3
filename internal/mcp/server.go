package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/beadscan/beadscan/internal/batch"
	"github.com/beadscan/beadscan/internal/config"
	"github.com/beadscan/beadscan/internal/document"
	"github.com/beadscan/beadscan/internal/extract"
	"github.com/beadscan/beadscan/internal/xlsx"
)

// Server exposes the partner-table extraction pipeline as MCP tools over
// standard I/O.
type Server struct {
	config    *config.Config
	validator *document.Validator
	service   *extract.Service
	writer    *xlsx.Writer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *extract.Service, writer *xlsx.Writer) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		validator: document.NewValidator(cfg.MaxFileSize),
		service:   service,
		writer:    writer,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractTool := mcp.NewTool(
		"partners_extract_file",
		mcp.WithDescription("Locate the partner/description table in a PDF and return its deduplicated rows"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("label",
			mcp.Description("Document label (derived from the file name if empty)"),
		),
	)
	s.mcpServer.AddTool(extractTool, s.handlePartnersExtractFile)

	exportTool := mcp.NewTool(
		"partners_export_file",
		mcp.WithDescription("Extract the partner table from a PDF and save it as an Excel workbook"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(exportTool, s.handlePartnersExportFile)

	validateTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handlePDFValidateFile)

	scanTool := mcp.NewTool(
		"partners_scan_directory",
		mcp.WithDescription("List the PDF files a batch run would process, with their derived labels"),
		mcp.WithString("directory",
			mcp.Description("Directory to scan (uses the configured input directory if empty)"),
		),
	)
	s.mcpServer.AddTool(scanTool, s.handlePartnersScanDirectory)
}

func (s *Server) handlePartnersExtractFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label := request.GetString("label", "")
	if label == "" {
		label = batch.DeriveLabel(path)
	}

	if err := s.validator.ValidateFile(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.service.ExtractFile(path, label)
	return mcp.NewToolResultText(s.formatExtractionResult(label, result)), nil
}

func (s *Server) handlePartnersExportFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label := batch.DeriveLabel(path)

	if err := s.validator.ValidateFile(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.service.ExtractFile(path, label)
	if result.Empty() {
		return mcp.NewToolResultError(fmt.Sprintf("%s: no partner/provider rows found", label)), nil
	}

	outPath, err := s.writer.Write(label, result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save workbook: %v", err)), nil
	}

	responseText := fmt.Sprintf("Saved %d rows for %s to %s\n", len(result.Records), label, outPath)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.validator.ValidateFile(path); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Invalid PDF: %s\nReason: %v", path, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Valid PDF: %s", path)), nil
}

func (s *Server) handlePartnersScanDirectory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := request.GetString("directory", "")
	if directory == "" {
		directory = s.config.InputDirectory
	}

	paths, err := batch.FindPDFs(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d PDF file(s) in %s\n\n", len(paths), directory)
	for _, p := range paths {
		fmt.Fprintf(&sb, "- %s (label: %s)\n", p, batch.DeriveLabel(p))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatExtractionResult renders an extraction result as readable text.
func (s *Server) formatExtractionResult(label string, result extract.Result) string {
	var sb strings.Builder
	if result.Empty() {
		fmt.Fprintf(&sb, "%s: no partner/provider rows found\n", label)
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s: %d partner row(s) from page(s) %v\n\n", label, len(result.Records), result.Pages)
	fmt.Fprintf(&sb, "%-50s | %s\n", "Partner", "Description")
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("-", 80))
	for _, rec := range result.Records {
		fmt.Fprintf(&sb, "%-50s | %s\n", truncate(rec.Partner, 50), truncate(rec.Description, 100))
	}
	return sb.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// Run starts the MCP server over standard I/O
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("starting beadscan MCP server in stdio mode")
		log.Printf("input directory: %s", s.config.InputDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
