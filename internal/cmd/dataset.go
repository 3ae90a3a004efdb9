package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/structml/tabrec/internal/dataset"
	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/pipeline"
)

// Dataset command flags
var datasetStrictFlag bool

// NewDatasetCmd creates the dataset command group.
func NewDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Dataset index operations",
	}

	cmd.AddCommand(newDatasetCheckCmd())

	return cmd
}

func newDatasetCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <config.json>",
		Short: "Scan the dataset index referenced by a document",
		Long: `Scan the label records referenced by a document's eval (and train)
sections and verify each referenced image exists under image_path.

Records whose image is missing are reported and skipped; by default the
scan still succeeds. --strict turns missing images into a failure.

Relative dataset paths resolve against dataRoot from the CLI settings when
it is set.

Examples:
  # Scan the eval dataset
  tabrec dataset check pipeline.json

  # Fail when any image is missing
  tabrec dataset check pipeline.json --strict`,
		Args: cobra.ExactArgs(1),
		RunE: runDatasetCheck,
	}

	cmd.Flags().BoolVar(&datasetStrictFlag, "strict", false,
		"Exit non-zero when any referenced image is missing")

	return cmd
}

// runDatasetCheck executes the dataset check command.
func runDatasetCheck(cmd *cobra.Command, args []string) error {
	doc, err := pipeline.Load(args[0])
	if err != nil {
		printDocError("loading document failed", err)
		return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
	}

	sections := []struct {
		name string
		ds   pipeline.Dataset
	}{
		{"eval", doc.Eval.Dataset},
	}
	if doc.Train != nil {
		sections = append(sections, struct {
			name string
			ds   pipeline.Dataset
		}{"train", doc.Train.Dataset})
	}

	dataRoot := GetSettings().DataRoot
	totalMissing := 0

	for _, section := range sections {
		dataPath := resolveDataPath(dataRoot, section.ds.DataPath)
		imagePath := resolveDataPath(dataRoot, section.ds.ImagePath)

		var result *dataset.ScanResult
		scan := func() error {
			var scanErr error
			result, scanErr = dataset.Scan(dataPath, imagePath)
			return scanErr
		}

		err := output.RunWithSpinner(context.Background(), scan,
			output.WithTitle(fmt.Sprintf("Scanning %s dataset...", section.name)))
		if err != nil {
			printDocError("scan failed", err)
			return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: true}
		}

		status := output.StatusOK
		if result.Missing > 0 {
			status = output.StatusMissing
		}
		output.Println(output.FormatFileLine(
			fmt.Sprintf("%s: %d records, %d ok, %d missing", section.name, result.Total, result.OK, result.Missing),
			status))

		for _, name := range result.MissingFiles {
			output.Println("  " + output.StyleDim.Render(filepath.Join(imagePath, name)))
		}

		totalMissing += result.Missing
	}

	if totalMissing > 0 && datasetStrictFlag {
		err := fmt.Errorf("%d referenced image(s) missing", totalMissing)
		return &ExitError{Code: ExitPathError, Err: err}
	}

	output.Println(output.FormatCheckmark("Dataset scan complete"))
	return nil
}

// resolveDataPath resolves a dataset path against the configured data root.
func resolveDataPath(dataRoot, path string) string {
	if dataRoot == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataRoot, path)
}
