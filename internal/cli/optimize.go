package cli

import (
	"encoding/json"
	"fmt"

	"github.com/me/schedopt/internal/solver"
	"github.com/me/schedopt/pkg/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newOptimizeCmd() *cobra.Command {
	var local bool
	var classical bool

	cmd := &cobra.Command{
		Use:   "optimize <instance...>",
		Short: "Optimize task schedules",
		Long: `Optimize reads one or more instance files (JSON or YAML), solves each
and prints the resulting schedules as JSON in argument order.

By default instances are sent to the schedopt server. Use --local to
anneal in-process, or --classical for the precedence-only baseline.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := pickOptimizer(local, classical)

			schedules := make([]*model.Schedule, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(4)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					inst, err := ReadInstance(path)
					if err != nil {
						return err
					}
					sched, err := opt.Optimize(ctx, inst)
					if err != nil {
						return fmt.Errorf("optimize %s: %w", path, err)
					}
					logger.Debug("schedule ready", "file", path, "tasks", len(inst.Tasks), "confidence", sched.Confidence)
					schedules[i] = sched
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, sched := range schedules {
				out, err := json.MarshalIndent(sched, "", "  ")
				if err != nil {
					return fmt.Errorf("encode schedule: %w", err)
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Solve in-process instead of calling the server")
	cmd.Flags().BoolVar(&classical, "classical", false, "Use the precedence-only baseline (implies --local)")
	return cmd
}

// pickOptimizer selects between the remote client and the in-process
// solvers.
func pickOptimizer(local, classical bool) solver.Optimizer {
	switch {
	case classical:
		return solver.Classical{}
	case local:
		return solver.NewAnnealing(solver.DefaultParams(), logger)
	default:
		return api
	}
}
