package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the schedopt server health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := api.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}
			fmt.Printf("Status:  %s\n", health.Status)
			fmt.Printf("Version: %s\n", health.Version)
			fmt.Printf("Go:      %s\n", health.GoVersion)
			fmt.Printf("Uptime:  %s\n", health.Uptime)
			return nil
		},
	}
}
