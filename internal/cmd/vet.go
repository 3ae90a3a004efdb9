package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	oerrors "github.com/structml/tabrec/internal/errors"
	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/pipeline"
)

// Vet command flags
var vetCheckPathsFlag bool

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet <config.json>",
		Short: "Validate a pipeline configuration document",
		Long: `Validate a pipeline configuration document.

The document is decoded strictly (unknown fields rejected), checked against
the embedded schema, and its named collaborators are resolved against the
backbone, metric, and transform registries. Purely a pass/fail validation
tool with per-field feedback.

Dataset paths are not touched unless --check-paths is given; a document can
be vetted on a machine that does not hold the data.

Exit codes:
  0  document is valid
  2  schema violation
  3  referenced path missing or unreadable
  4  unknown backbone, metric, or transform
  5  document file not found

Examples:
  # Validate a document
  tabrec vet pipeline.json

  # Validate including dataset path existence
  tabrec vet pipeline.json --check-paths`,
		Args: cobra.ExactArgs(1),
		RunE: runVet,
	}

	cmd.Flags().BoolVar(&vetCheckPathsFlag, "check-paths", false,
		"Also verify that referenced dataset paths exist")

	return cmd
}

// runVet executes the vet command.
func runVet(cmd *cobra.Command, args []string) error {
	path := args[0]

	output.Debug("vetting document", "path", path)

	doc, err := pipeline.Load(path)
	if err != nil {
		printDocError("validation failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}
	output.Println(output.FormatCheckmark("Document parses (strict JSON)"))

	// Cross-check the raw bytes against the embedded schema.
	validator, err := pipeline.NewValidator()
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return &ExitError{Code: ExitNotFound, Err: err}
	}
	if err := validator.ValidateBytes(path, raw); err != nil {
		printDocError("schema check failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}
	output.Println(output.FormatCheckmark("Document satisfies embedded schema"))

	if err := doc.Validate(); err != nil {
		printDocError("validation failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}
	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"Collaborators resolve (%s-%d, %d metric(s))",
		doc.Architecture.ImageModule.Name, doc.Architecture.ImageModule.Layer, len(doc.Metric))))

	if vetCheckPathsFlag {
		if err := doc.CheckPaths(); err != nil {
			printDocError("path check failed", err)
			return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
		}
		output.Println(output.FormatCheckmark("Dataset paths exist"))
	}

	output.Println(output.FormatCheckmark("Document valid"))
	return nil
}

// printDocError renders a document error with per-field detail lines.
func printDocError(headline string, err error) {
	output.Error(headline)

	var schemaErrs pipeline.SchemaErrors
	if errors.As(err, &schemaErrs) {
		for _, fe := range schemaErrs {
			output.Println(output.FormatFieldError(fe.Field, fe.Message))
		}
		return
	}

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		if detail.Field != "" {
			output.Println(output.FormatFieldError(detail.Field, detail.Message))
		} else {
			output.Println("  " + detail.Message)
		}
		if detail.Location != "" {
			output.Println("  location: " + output.StyleNoun.Render(detail.Location))
		}
		if detail.Hint != "" {
			output.Println("  " + detail.Hint)
		}
		return
	}

	output.Println("  " + err.Error())
}
