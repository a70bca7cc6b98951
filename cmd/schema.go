package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/tpu-doc/pkg/baseline"
)

// NewCmdSchema creates the schema command, which prints the OpenAPI document
// describing json reports and baselines.
func NewCmdSchema(d *deps) *cobra.Command {
	format := newEnumValue("yaml", []string{"yaml", "json"})
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI schema of the json report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := cmd.Root()
			doc, err := baseline.Schema(root.Version)
			if err != nil {
				return runtimeError(err)
			}
			if format.String() == "json" {
				enc := json.NewEncoder(d.stdout)
				enc.SetIndent("", "  ")
				err = enc.Encode(doc)
			} else {
				enc := yaml.NewEncoder(d.stdout)
				enc.SetIndent(2)
				err = enc.Encode(doc)
			}
			if err != nil {
				return runtimeError(err)
			}
			return nil
		},
	}
	cmd.Flags().Var(format, "format", "output format")
	return cmd
}
