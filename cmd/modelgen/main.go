package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelgen",
		Short: "Generate model descriptions from GraphQL SDL",
		Long: `modelgen reads entity types written in GraphQL SDL, resolves their
naming and relationships, and renders Go models, JavaScript classes
and SQL schemas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.InspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
