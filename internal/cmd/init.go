package cmd

import (
	"os"

	"github.com/spf13/cobra"

	oerrors "github.com/structml/tabrec/internal/errors"
	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/pipeline"
)

// Init command flags
var initForceFlag bool

// defaultDocumentName is the file written when no path argument is given.
const defaultDocumentName = "pipeline.json"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default pipeline configuration document",
		Long: `Write the default evaluation pipeline configuration document.

The generated document describes a ResNet-vd 18 backbone with a 256-wide
structure head, the TEDS table metric, and the standard four-step PubTabNet
preprocessing sequence. It passes vet as written and is meant to be edited
from there.

Arguments:
  path    Output file (default: pipeline.json)

Examples:
  # Write pipeline.json in the current directory
  tabrec init

  # Write to a custom location, overwriting if present
  tabrec init configs/eval.json --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initForceFlag, "force", "f", false,
		"Overwrite an existing document")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, args []string) error {
	path := defaultDocumentName
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !initForceFlag {
		detail := &oerrors.DetailError{
			Type:     "schema violation",
			Message:  "document already exists",
			Location: path,
			Hint:     "Use --force to overwrite the existing document.",
			Cause:    oerrors.ErrSchema,
		}
		printDocError("init failed", detail)
		return &ExitError{Code: ExitSchemaError, Err: detail, Printed: true}
	}

	data, err := pipeline.DefaultDocument().MarshalCanonical()
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	output.Println(output.FormatCheckmark("Wrote " + output.StyleNoun.Render(path)))
	output.Println("")
	output.Println("Validate with: tabrec vet " + path)

	return nil
}
