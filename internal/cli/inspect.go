package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/modelgen/compiler"
)

// InspectCmd returns the inspect command
func InspectCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved models as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			g, err := compiler.LoadGraph(cfg)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(g); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	f.bind(cmd)
	return cmd
}
