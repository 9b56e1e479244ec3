package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/beadscan/beadscan/internal/document"
	"github.com/beadscan/beadscan/internal/extract"
	"github.com/beadscan/beadscan/internal/xlsx"
)

// Summary records the outcome for one processed document.
type Summary struct {
	Label      string
	Path       string
	Rows       int
	Pages      []int
	OutputPath string
	Err        error
}

// PageRange formats the contributing page span for logs.
func (s Summary) PageRange() string {
	if len(s.Pages) == 0 {
		return "?"
	}
	return fmt.Sprintf("%d-%d", s.Pages[0], s.Pages[len(s.Pages)-1])
}

// Runner drives extraction over every PDF in a directory. Documents are
// independent, so they run concurrently up to a worker limit; a failure on
// one never aborts the rest.
type Runner struct {
	inputDir  string
	workers   int
	validator *document.Validator
	service   *extract.Service
	writer    *xlsx.Writer

	// Verbose adds sample rows to the per-document log output.
	Verbose bool
}

// NewRunner creates a batch runner.
func NewRunner(inputDir string, workers int, validator *document.Validator,
	service *extract.Service, writer *xlsx.Writer,
) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		inputDir:  inputDir,
		workers:   workers,
		validator: validator,
		service:   service,
		writer:    writer,
	}
}

// Run processes every PDF under the input directory and returns one
// summary per document, in discovery order.
func (r *Runner) Run(ctx context.Context) ([]Summary, error) {
	paths, err := FindPDFs(r.inputDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		log.Printf("no PDF files found in %s", r.inputDir)
		return nil, nil
	}

	summaries := make([]Summary, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			summaries[i] = r.processFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summaries, err
	}

	for _, s := range summaries {
		r.logSummary(s)
	}
	return summaries, nil
}

// processFile runs the full pipeline for one document.
func (r *Runner) processFile(path string) Summary {
	label := DeriveLabel(path)
	summary := Summary{Label: label, Path: path}
	log.Printf("=== processing %s (%s) ===", label, path)

	if err := r.validator.ValidateFile(path); err != nil {
		summary.Err = err
		return summary
	}

	result := r.service.ExtractFile(path, label)
	if result.Empty() {
		summary.Err = fmt.Errorf("no partner/provider rows found")
		return summary
	}
	summary.Rows = len(result.Records)
	summary.Pages = result.Pages
	if r.Verbose {
		for i, rec := range result.Records {
			if i == 3 {
				log.Printf("  ... %d more", len(result.Records)-i)
				break
			}
			log.Printf("  %s: %s", rec.Partner, rec.Description)
		}
	}

	outPath, err := r.writer.Write(label, result)
	if err != nil {
		summary.Err = fmt.Errorf("failed to save workbook: %w", err)
		return summary
	}
	summary.OutputPath = outPath
	return summary
}

// logSummary prints the per-document outcome the batch is judged by.
func (r *Runner) logSummary(s Summary) {
	if s.Err != nil {
		log.Printf("%s: %v", s.Label, s.Err)
		return
	}
	log.Printf("%s: %d rows from pages %s -> %s", s.Label, s.Rows, s.PageRange(), s.OutputPath)
}

// FindPDFs walks a directory and returns every .pdf path in lexical walk
// order. Unreadable entries are skipped rather than failing the batch.
func FindPDFs(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("cannot access input directory %s: %w", dir, err)
	}

	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries, keep walking
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(info.Name()), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return paths, nil
}

// multiWordLabels maps squashed single-token file names to their proper
// multi-word labels.
var multiWordLabels = map[string]string{
	"newhampshire":       "New Hampshire",
	"newjersey":          "New Jersey",
	"newmexico":          "New Mexico",
	"newyork":            "New York",
	"northcarolina":      "North Carolina",
	"northdakota":        "North Dakota",
	"rhodeisland":        "Rhode Island",
	"southcarolina":      "South Carolina",
	"southdakota":        "South Dakota",
	"westvirginia":       "West Virginia",
	"districtofcolumbia": "District of Columbia",
	"puertorico":         "Puerto Rico",
	"americansamoa":      "American Samoa",
	"virginislands":      "Virgin Islands",
	"northernmariana":    "Northern Mariana",
}

// DeriveLabel turns a file path into a human-readable document label:
// extension stripped, separators replaced with spaces, known squashed
// multi-word names expanded.
func DeriveLabel(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if expanded, ok := multiWordLabels[strings.ToLower(base)]; ok {
		return expanded
	}

	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.Join(strings.Fields(base), " ")
}
