package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// DocDiff represents a semantic diff between two configuration documents.
type DocDiff struct {
	// HasChanges indicates if there are differences.
	HasChanges bool

	// Report is the rendered dyff report, empty when documents match.
	Report string
}

// DiffDocuments computes a semantic diff between two JSON documents.
// Both inputs are converted to YAML so dyff can compare them structurally,
// ignoring key ordering and formatting.
func DiffDocuments(fromName string, from []byte, toName string, to []byte, useColor bool) (*DocDiff, error) {
	fromYAML, err := yaml.JSONToYAML(from)
	if err != nil {
		return nil, fmt.Errorf("converting %s to YAML: %w", fromName, err)
	}

	toYAML, err := yaml.JSONToYAML(to)
	if err != nil {
		return nil, fmt.Errorf("converting %s to YAML: %w", toName, err)
	}

	fromInput, err := parseYAMLInput(fromName, fromYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fromName, err)
	}

	toInput, err := parseYAMLInput(toName, toYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", toName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return nil, fmt.Errorf("comparing documents: %w", err)
	}

	if len(report.Diffs) == 0 {
		return &DocDiff{}, nil
	}

	rendered, err := renderDyffReport(report, useColor)
	if err != nil {
		return nil, err
	}

	return &DocDiff{
		HasChanges: true,
		Report:     rendered,
	}, nil
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	result := buf.String()

	// Clean up output - remove trailing whitespace from lines
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// IndentDiff indents a diff string for display under a heading.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	lines := strings.Split(diff, "\n")
	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
