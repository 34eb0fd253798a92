package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/porder/pkg/errors"
	"github.com/matzehuels/porder/pkg/render"
	"github.com/matzehuels/porder/pkg/scenario"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output    string
		format    string
		branch    string
		closure   bool
		sentinels bool
		bounds    boundsFlags
	)

	cmd := &cobra.Command{
		Use:   "dot <scenario>",
		Short: "Draw a branch's order as a Graphviz diagram",
		Long: `Replay a scenario and draw the final order of one branch.

By default the Hasse diagram is drawn: only pairs not implied by others.
Nodes are labelled with their position in the branch's linearization.`,
		Example: `  # DOT to stdout
  porder dot scenarios/refine.toml

  # SVG of a branch, with the start and goal steps
  porder dot scenarios/refine.toml --branch split --sentinels -o split.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromOutput(output)
			}
			if err := errors.ValidateFormat(format, formatDOT, formatSVG); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			if branch != scenario.TrunkName {
				if _, ok := sc.Branch(branch); !ok {
					return errors.New(errors.ErrCodeBranchNotFound, "scenario %s has no branch %q", sc.Name, branch)
				}
			}

			report, err := scenario.Run(ctx, sc, scenario.Options{
				Logger: logger,
				Bounds: bounds.resolve(cmd, sc),
			})
			if err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				logger.Warn("scenario expectations failed", "count", len(report.Failures()))
			}

			store, _ := report.Store(branch)
			order := report.Branches[0].Order
			for _, b := range report.Branches {
				if b.Name == branch {
					order = b.Order
				}
			}

			dot := render.ToDOT(store, render.Options{
				Closure:   closure,
				Sentinels: sentinels,
				Order:     order,
			})
			data := []byte(dot)
			if format == formatSVG {
				if data, err = render.RenderSVG(ctx, dot); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess(cmd.ErrOrStderr(), "Diagram of %s written", branch)
			printFile(cmd.ErrOrStderr(), output)
			printDetail(cmd.ErrOrStderr(), "%d steps, %d edges", store.Len(), strings.Count(dot, "->"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "", "dot or svg (default: from the output extension, else dot)")
	cmd.Flags().StringVarP(&branch, "branch", "b", scenario.TrunkName, "branch to draw")
	cmd.Flags().BoolVar(&closure, "closure", false, "draw every pair of the closure, not just the Hasse diagram")
	cmd.Flags().BoolVar(&sentinels, "sentinels", false, "draw the start and goal steps")
	bounds.register(cmd)

	return cmd
}

func formatFromOutput(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return formatSVG
	}
	return formatDOT
}
