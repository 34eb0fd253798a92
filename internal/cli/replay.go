package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/porder/pkg/errors"
	"github.com/matzehuels/porder/pkg/observability"
	"github.com/matzehuels/porder/pkg/ordering"
	"github.com/matzehuels/porder/pkg/scenario"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// boundsFlags overrides scenario sentinels from the command line.
type boundsFlags struct {
	start, goal int
}

func (f *boundsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.start, "start", 0, "override the start sentinel step id")
	cmd.Flags().IntVar(&f.goal, "goal", 0, "override the goal sentinel step id")
}

// resolve returns the bounds to pass to the replay, or nil when neither flag
// was set.
func (f *boundsFlags) resolve(cmd *cobra.Command, sc *scenario.Scenario) *ordering.Bounds {
	startSet, goalSet := cmd.Flags().Changed("start"), cmd.Flags().Changed("goal")
	if !startSet && !goalSet {
		return nil
	}
	b := sc.Bounds()
	if startSet {
		b.Start = ordering.StepID(f.start)
	}
	if goalSet {
		b.Goal = ordering.StepID(f.goal)
	}
	return &b
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		format      string
		metrics     bool
		matrix      bool
		concurrency int
		bounds      boundsFlags
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Replay a scenario and report each branch's order",
		Long: `Replay the operations of a TOML or YAML scenario against a fresh ordering store.

The trunk runs first. Every branch then runs on its own copy of the trunk,
concurrently. For each branch the command reports a linearization, the Hasse
diagram of the order and the insertion statistics. Failed expectations make
the command exit with status 1; a cycle in the closure exits with status 3.`,
		Example: `  # Replay and print a summary
  porder replay scenarios/refine.toml

  # Machine-readable report
  porder replay scenarios/refine.yaml --format json

  # Override the sentinels and dump metrics to stderr
  porder replay plan.toml --start -1 --goal 1000 --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, formatText, formatJSON); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			hooks := []observability.OrderingHooks{observability.NewLogHooks(logger)}
			if metrics {
				sink, err := newMetricsSink(cmd.ErrOrStderr())
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "set up metrics")
				}
				defer func() {
					if err := sink.Shutdown(context.WithoutCancel(ctx)); err != nil {
						logger.Warn("metrics export failed", "err", err)
					}
				}()
				hooks = append(hooks, sink.hooks)
			}

			prog := newProgress(logger)
			report, err := scenario.Run(ctx, sc, scenario.Options{
				Logger:      logger,
				Hooks:       observability.Multi(hooks...),
				Bounds:      bounds.resolve(cmd, sc),
				Concurrency: concurrency,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Replayed %s (%d branches)", sc.Name, len(report.Branches)))

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				if err := writeJSON(out, report); err != nil {
					return err
				}
			default:
				printReport(out, report)
			}

			if matrix {
				for _, b := range report.Branches {
					store, _ := report.Store(b.Name)
					fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", b.Name)
					if err := store.WriteMatrix(cmd.ErrOrStderr()); err != nil {
						return err
					}
				}
			}
			return report.Err()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "export ordering metrics to stderr when done")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "dump each branch's closure matrix to stderr")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum branches replayed at once (0 = unlimited)")
	bounds.register(cmd)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *scenario.Report) {
	failures := r.Failures()
	if len(failures) == 0 {
		printSuccess(w, "Replayed %s", r.Scenario)
	} else {
		printError(w, "Replayed %s with %d failed expectations", r.Scenario, len(failures))
	}
	printKeyValue(w, "Run", r.RunID)
	printKeyValue(w, "Sentinels", fmt.Sprintf("start=%d goal=%d", r.Bounds.Start, r.Bounds.Goal))
	fmt.Fprintln(w, branchTable(r))

	for _, b := range r.Branches {
		fmt.Fprintln(w)
		printTitle(w, b.Name)
		printKeyValue(w, "Order", formatOrder(b.Order))
		printKeyValue(w, "Hasse", formatPairs(b.Reduction))
		printKeyValue(w, "Inserts", formatStats(b.Stats))
		for _, f := range b.Failures {
			printError(w, "%s", f)
		}
	}
}
