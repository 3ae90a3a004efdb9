package cmd

import (
	"github.com/spf13/cobra"

	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/pipeline"
)

// Diff command flags
var diffNoColorFlag bool

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <from.json> <to.json>",
		Short: "Show semantic differences between two documents",
		Long: `Show semantic differences between two pipeline configuration documents.

Both documents are parsed, canonicalized, and compared structurally, so
formatting-only differences (whitespace, key order) do not show up. The
report lists added, removed, and changed fields by path.

Examples:
  # Compare an eval config against a training config
  tabrec diff eval.json train.json

  # Plain output for scripting
  tabrec diff eval.json train.json --no-color`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&diffNoColorFlag, "no-color", false,
		"Disable colors in diff output")

	return cmd
}

// runDiff executes the diff command.
func runDiff(cmd *cobra.Command, args []string) error {
	fromPath, toPath := args[0], args[1]

	canonicalize := func(path string) ([]byte, error) {
		doc, err := pipeline.Load(path)
		if err != nil {
			return nil, err
		}
		return doc.MarshalCanonical()
	}

	from, err := canonicalize(fromPath)
	if err != nil {
		printDocError("loading "+fromPath+" failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	to, err := canonicalize(toPath)
	if err != nil {
		printDocError("loading "+toPath+" failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	useColor := !diffNoColorFlag && output.IsTTY()

	diff, err := output.DiffDocuments(fromPath, from, toPath, to, useColor)
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	if !diff.HasChanges {
		output.Println("No differences found")
		return nil
	}

	output.Print(diff.Report)
	return nil
}
