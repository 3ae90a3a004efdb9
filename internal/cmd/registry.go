package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/structml/tabrec/internal/output"
	"github.com/structml/tabrec/internal/registry"
)

// NewRegistryCmd creates the registry command.
func NewRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "registry [backbones|metrics|transforms]",
		Short:     "List registered collaborators",
		ValidArgs: []string{"backbones", "metrics", "transforms"},
		Long: `List the collaborators a pipeline document can reference by name.

With no argument all three registries are listed.

Examples:
  # List everything
  tabrec registry

  # List only the backbones
  tabrec registry backbones`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: runRegistry,
	}
}

// runRegistry executes the registry command.
func runRegistry(cmd *cobra.Command, args []string) error {
	which := ""
	if len(args) > 0 {
		which = args[0]
	}

	if which == "" || which == "backbones" {
		t := output.NewTable("Backbone", "Depths", "Gated", "Description")
		for _, b := range registry.Backbones() {
			depths := make([]string, len(b.SupportedDepths))
			for i, d := range b.SupportedDepths {
				depths[i] = fmt.Sprintf("%d", d)
			}
			t.Row(b.Name, strings.Join(depths, ", "), fmt.Sprintf("%t", b.Gated), b.Description)
		}
		output.Println(t.String())
	}

	if which == "" || which == "metrics" {
		t := output.NewTable("Metric Type", "Direction", "Description")
		for _, m := range registry.Metrics() {
			t.Row(m.Type, m.Direction, m.Description)
		}
		output.Println(t.String())
	}

	if which == "" || which == "transforms" {
		t := output.NewTable("Transform", "Stage", "Parameters")
		for _, tr := range registry.Transforms() {
			params := strings.Join(tr.Params, ", ")
			if params == "" {
				params = "-"
			}
			t.Row(tr.Tag, fmt.Sprintf("%d", tr.Stage), params)
		}
		output.Println(t.String())
	}

	return nil
}
