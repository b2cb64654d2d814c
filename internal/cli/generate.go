package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/compiler"
	"github.com/syssam/modelgen/compiler/gen"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var (
		f     flags
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate models from the schema",
		Long: `Load the schema, resolve the models and write the selected formats
to the target directory. Flags override the configuration file.

With --watch, the schema directories are watched and the models are
regenerated after every change until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if watch {
				ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return compiler.Watch(ctx, cfg, func(res *compiler.Result, err error) {
					if err != nil {
						cfg.Logger.Error().Err(err).Msg("generate")
						return
					}
					report(out, res)
				})
			}
			res, err := compiler.Generate(contextOf(cmd), cfg)
			if err != nil {
				return err
			}
			report(out, res)
			return nil
		},
	}
	f.bind(cmd)
	f.bindOutput(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate on schema changes")
	return cmd
}

var statusColors = map[gen.Status]*color.Color{
	gen.StatusCreated:   color.New(color.FgGreen),
	gen.StatusUpdated:   color.New(color.FgYellow),
	gen.StatusUnchanged: color.New(color.Faint),
}

func report(w io.Writer, res *compiler.Result) {
	for _, f := range res.Files {
		fmt.Fprintf(w, "%s %s\n", statusColors[f.Status].Sprintf("%-9s", f.Status), f.Path)
	}
	fmt.Fprintf(w, "%d models, %d files written, %d unchanged\n",
		len(res.Graph.Nodes), res.Metrics.FilesWritten, res.Metrics.FilesUnchanged)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
