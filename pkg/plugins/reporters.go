package plugins

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Report artifacts carry run outcomes only. Endpoint credentials never
// appear in a TransferResult, so nothing here needs redaction.

func reportPath(dir, runID, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("transfer-%s.%s", runID, ext)), nil
}

// MarkdownReporter writes a human-readable run summary.
type MarkdownReporter struct {
	outputDir string
}

// NewMarkdownReporter creates a markdown reporter. Options: "output_dir"
// (string, default ".").
func NewMarkdownReporter(options map[string]any) (Reporter, error) {
	dir, err := optString(options, "output_dir", ".")
	if err != nil {
		return nil, err
	}
	return &MarkdownReporter{outputDir: dir}, nil
}

func (r *MarkdownReporter) Name() string {
	return "markdown"
}

func (r *MarkdownReporter) Write(result *models.TransferResult) (string, error) {
	path, err := reportPath(r.outputDir, result.RunID, "md")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Transfer Report %s\n\n", result.RunID)
	fmt.Fprintf(&b, "- Status: %s\n", result.Status)
	fmt.Fprintf(&b, "- Started: %s\n", result.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Duration: %s\n", result.Duration)
	fmt.Fprintf(&b, "- Dry run: %t\n\n", result.DryRun)
	fmt.Fprintf(&b, "| Transferred | Skipped | Failed |\n|---|---|---|\n| %d | %d | %d |\n",
		result.Transferred, result.Skipped, result.Failed)

	if len(result.Issues) > 0 {
		b.WriteString("\n## Issues\n\n| Workflow | Name | Reason |\n|---|---|---|\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", issue.WorkflowID, issue.Name, issue.Reason)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// JSONReporter writes the raw result for machine consumption.
type JSONReporter struct {
	outputDir string
}

// NewJSONReporter creates a JSON reporter. Options: "output_dir" (string,
// default ".").
func NewJSONReporter(options map[string]any) (Reporter, error) {
	dir, err := optString(options, "output_dir", ".")
	if err != nil {
		return nil, err
	}
	return &JSONReporter{outputDir: dir}, nil
}

func (r *JSONReporter) Name() string {
	return "json"
}

func (r *JSONReporter) Write(result *models.TransferResult) (string, error) {
	path, err := reportPath(r.outputDir, result.RunID, "json")
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// CSVReporter writes the per-record issues as rows for spreadsheet review.
type CSVReporter struct {
	outputDir string
}

// NewCSVReporter creates a CSV reporter. Options: "output_dir" (string,
// default ".").
func NewCSVReporter(options map[string]any) (Reporter, error) {
	dir, err := optString(options, "output_dir", ".")
	if err != nil {
		return nil, err
	}
	return &CSVReporter{outputDir: dir}, nil
}

func (r *CSVReporter) Name() string {
	return "csv"
}

func (r *CSVReporter) Write(result *models.TransferResult) (string, error) {
	path, err := reportPath(r.outputDir, result.RunID, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"workflow_id", "name", "reason"}); err != nil {
		return "", err
	}
	for _, issue := range result.Issues {
		if err := w.Write([]string{issue.WorkflowID, issue.Name, issue.Reason}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return path, nil
}

func markdownDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "markdown",
		Version:     "1.0.0",
		Description: "Markdown run summary",
		Enabled:     true,
		Options:     map[string]any{"output_dir": "."},
	}
}

func jsonDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "json",
		Version:     "1.0.0",
		Description: "JSON run result",
		Enabled:     true,
		Options:     map[string]any{"output_dir": "."},
	}
}

func csvDescriptor() models.PluginDescriptor {
	return models.PluginDescriptor{
		Name:        "csv",
		Version:     "1.0.0",
		Description: "CSV issue rows",
		Enabled:     true,
		Options:     map[string]any{"output_dir": "."},
	}
}
