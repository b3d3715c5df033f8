package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fenilsonani/folder-organizer/internal/category"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// rule separates the summary block from progress output
var rule = strings.Repeat("=", 50)

// ParseFormat maps a flag or config value to an OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSummary, "":
		return FormatSummary, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report renders the final report of a run
func (r *Reporter) Report(run *organizer.Run) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(run)
	case FormatJSON:
		return r.reportJSON(run)
	case FormatYAML:
		return r.reportYAML(run)
	case FormatSummary:
		return r.reportSummary(run)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates the human-readable summary block
func (r *Reporter) reportSummary(run *organizer.Run) error {
	fmt.Fprintf(r.writer, "\n%s\n", rule)
	fmt.Fprintf(r.writer, "📊 Organization report\n")
	fmt.Fprintf(r.writer, "%s\n", rule)

	if run.DryRun {
		fmt.Fprintf(r.writer, "[DRY RUN MODE] No files were moved.\n")
	}

	fmt.Fprintf(r.writer, "📂 Directory: %s\n", run.Directory)
	fmt.Fprintf(r.writer, "✅ Files organized: %d (%s)\n", run.Organized, humanize.Bytes(uint64(run.BytesMoved)))

	counts := run.CountByCategory()
	for _, name := range category.Names() {
		if n := counts[name]; n > 0 {
			fmt.Fprintf(r.writer, "   %s: %d\n", name, n)
		}
	}

	if run.HasErrors() {
		fmt.Fprintf(r.writer, "❌ Errors: %d\n", len(run.Errors))
		for _, msg := range run.ErrorMessages() {
			fmt.Fprintf(r.writer, "   • %s\n", msg)
		}
		fmt.Fprintf(r.writer, "\n%s", organizer.FormatErrorSummary(run.Errors))
	} else {
		fmt.Fprintf(r.writer, "✨ No errors!\n")
	}

	fmt.Fprintf(r.writer, "⏱  Took %s\n", progress.FormatDuration(run.Duration()))
	fmt.Fprintf(r.writer, "%s\n", rule)

	return nil
}

// reportTable lists every move and error as a table
func (r *Reporter) reportTable(run *organizer.Run) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Category", "Destination", "Size", "Status"})

	for _, m := range run.Moves {
		tw.AppendRow(table.Row{m.Name, m.Category, m.Destination, humanize.Bytes(uint64(m.Size)), "moved"})
	}
	for _, e := range run.Errors {
		tw.AppendRow(table.Row{e.Name, e.Category, "", "", e.Reason.String()})
	}

	tw.AppendFooter(table.Row{"Total", "", "", humanize.Bytes(uint64(run.BytesMoved)),
		fmt.Sprintf("%d moved, %d errors", run.Organized, len(run.Errors))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(r.writer, tw.Render())
	return nil
}

// document is the machine-readable shape shared by JSON and YAML
type document struct {
	RunID          string           `json:"run_id" yaml:"run_id"`
	Timestamp      string           `json:"timestamp" yaml:"timestamp"`
	Directory      string           `json:"directory" yaml:"directory"`
	DryRun         bool             `json:"dry_run" yaml:"dry_run"`
	Organized      int              `json:"organized" yaml:"organized"`
	BytesMoved     int64            `json:"bytes_moved" yaml:"bytes_moved"`
	DurationMS     int64            `json:"duration_ms" yaml:"duration_ms"`
	FoldersCreated []string         `json:"folders_created" yaml:"folders_created"`
	Moves          []organizer.Move `json:"moves" yaml:"moves"`
	Errors         []documentError  `json:"errors" yaml:"errors"`
	ByCategory     map[string]int   `json:"by_category" yaml:"by_category"`
}

type documentError struct {
	Name    string `json:"name" yaml:"name"`
	Reason  string `json:"reason" yaml:"reason"`
	Message string `json:"message" yaml:"message"`
}

func newDocument(run *organizer.Run) document {
	errs := make([]documentError, len(run.Errors))
	for i, e := range run.Errors {
		errs[i] = documentError{
			Name:    e.Name,
			Reason:  e.Reason.String(),
			Message: e.UserMessage(),
		}
	}

	folders := run.FoldersCreated
	if folders == nil {
		folders = []string{}
	}

	return document{
		RunID:          run.ID,
		Timestamp:      run.StartedAt.Format(time.RFC3339),
		Directory:      run.Directory,
		DryRun:         run.DryRun,
		Organized:      run.Organized,
		BytesMoved:     run.BytesMoved,
		DurationMS:     run.Duration().Milliseconds(),
		FoldersCreated: folders,
		Moves:          run.Moves,
		Errors:         errs,
		ByCategory:     run.CountByCategory(),
	}
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(run *organizer.Run) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDocument(run))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(run *organizer.Run) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(newDocument(run))
}

// SaveToFile saves the report to a file
func SaveToFile(run *organizer.Run, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(run)
}
