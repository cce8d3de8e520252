package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"m3u-helper/category"
	"m3u-helper/sourceproc"
)

var (
	okColor   = color.New(color.FgGreen)
	skipColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

func formatWith(cmd *cobra.Command, processor *sourceproc.Processor, files []string) (*sourceproc.Summary, error) {
	if len(files) == 0 {
		return processor.FormatAll(cmd.Context())
	}
	return processor.FormatFiles(cmd.Context(), files)
}

func printSummary(w io.Writer, summary *sourceproc.Summary, asJSON bool) error {
	if asJSON {
		return writeJSON(w, summary)
	}

	for _, result := range summary.Results {
		printResultLine(w, result)
	}
	for _, failure := range summary.Failed {
		failColor.Fprintf(w, "failed  %s: %s\n", filepath.Base(failure.File), failure.Error)
	}
	if len(summary.Results) == 0 && len(summary.Failed) == 0 {
		fmt.Fprintln(w, "no playlists found")
	}
	return nil
}

func printResult(w io.Writer, result *sourceproc.Result, asJSON bool) error {
	if asJSON {
		return writeJSON(w, result)
	}

	printResultLine(w, result)
	for _, failure := range result.Failed {
		failColor.Fprintf(w, "failed  %s: %s\n", filepath.Base(failure.File), failure.Error)
	}
	return nil
}

func printResultLine(w io.Writer, result *sourceproc.Result) {
	if result.Skipped {
		skipColor.Fprintf(w, "skipped %s: %s\n", describeSources(result), result.Reason)
		return
	}

	line := fmt.Sprintf("wrote   %s: %d channels", filepath.Base(result.Output), result.Written)
	if result.Dropped > 0 {
		line += fmt.Sprintf(", %d unreachable dropped", result.Dropped)
	}
	okColor.Fprintln(w, line)

	if counts := formatCounts(result.Counts); counts != "" {
		fmt.Fprintf(w, "        %s\n", counts)
	}
}

func describeSources(result *sourceproc.Result) string {
	if len(result.Sources) == 1 {
		return filepath.Base(result.Sources[0])
	}
	return filepath.Base(result.Output)
}

func formatCounts(counts map[category.Category]int) string {
	var parts []string
	for _, cat := range category.Order() {
		if n := counts[cat]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", cat.Label(), n))
		}
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
