package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/pipeline"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <config.json>",
		Short: "Render a pipeline configuration document",
		Long: `Render a parsed pipeline configuration document.

Formats:
  yaml   full document as YAML (default)
  json   full document in canonical JSON
  table  architecture, metric, and section summary tables

Examples:
  # Show as YAML
  tabrec show pipeline.json

  # Show the canonical JSON form
  tabrec show pipeline.json -o json

  # Show a summary table
  tabrec show pipeline.json -o table`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, args []string) error {
	doc, err := pipeline.Load(args[0])
	if err != nil {
		printDocError("loading document failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	canonical, err := doc.MarshalCanonical()
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	switch resolvedOutputFormat() {
	case output.FormatJSON:
		output.Print(string(canonical))

	case output.FormatTable:
		printDocumentTables(doc)

	default:
		rendered, err := yaml.JSONToYAML(canonical)
		if err != nil {
			return &ExitError{Code: ExitGeneralError, Err: err}
		}
		output.Print(string(rendered))
	}

	return nil
}

// printDocumentTables renders the summary table view.
func printDocumentTables(doc *pipeline.Document) {
	im := doc.Architecture.ImageModule
	tm := doc.Architecture.TaskModule

	arch := output.NewTable("Module", "Name", "Config").
		Row("image", fmt.Sprintf("%s-%d", im.Name, im.Layer),
			fmt.Sprintf("hidden_layers=%d out_channels=%d proj_size=%d has_gate=%t",
				im.HiddenLayers, im.OutChannels, im.ProjSize, im.HasGate)).
		Row("task", "structure head",
			fmt.Sprintf("in_channels=%d hidden_size=%d", tm.InChannels, tm.HiddenSize))
	output.Println(arch.String())

	metrics := output.NewTable("Metric", "Type")
	for _, m := range doc.Metric {
		metrics.Row(m.Name, m.Type)
	}
	output.Println(metrics.String())

	sections := output.NewTable("Section", "Data Path", "Batch", "Workers", "Transform")
	addSection := func(name string, s *pipeline.Section) {
		tags := make([]string, len(s.Dataset.Transform))
		for i, step := range s.Dataset.Transform {
			tags[i] = step.Tag
		}
		sections.Row(name, s.Dataset.DataPath,
			fmt.Sprintf("%d", s.Dataset.BatchSize),
			fmt.Sprintf("%d", s.Loader.NumWorkers),
			strings.Join(tags, " > "))
	}
	addSection("eval", &doc.Eval)
	if doc.Train != nil {
		addSection("train", doc.Train)
	}
	output.Println(sections.String())
}
