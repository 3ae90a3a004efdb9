package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show tabrec CLI version information.

Displays:
  - tabrec version, commit, and build date
  - pipeline document schema version`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	output.Println(fmt.Sprintf("tabrec version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:  %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:   %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:      %s", info.GoVersion))
	output.Println(fmt.Sprintf("  Schema:  %s", info.SchemaVersion))

	return nil
}
