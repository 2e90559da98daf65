package cli

import (
	"encoding/json"
	"fmt"

	"github.com/me/schedopt/internal/solver"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var local bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "compare <instance>",
		Short: "Compare the annealed schedule against the classical baseline",
		Long: `Compare solves an instance twice, once with the precedence-only
baseline and once with the annealing candidate, then scores both orders
under the instance weights and reports the winner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ReadInstance(args[0])
			if err != nil {
				return err
			}

			var candidate solver.Optimizer = api
			if local {
				candidate = solver.NewAnnealing(solver.DefaultParams(), logger)
			}

			res := solver.Compare(cmd.Context(), solver.Classical{}, candidate, inst)

			fmt.Printf("Baseline cost:  %d\n", res.BaselineCost)
			fmt.Printf("Candidate cost: %d\n", res.CandidateCost)
			fmt.Printf("Winner:         %s\n", res.Winner)

			if verbose {
				out, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Anneal in-process instead of calling the server")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print both schedules as JSON")
	return cmd
}
