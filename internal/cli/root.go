package cli

import (
	"log/slog"
	"os"

	"github.com/me/schedopt/internal/client"
	"github.com/me/schedopt/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	api    *client.Client
)

// defaultServer returns the default server URL, checking the
// SCHEDOPT_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SCHEDOPT_SERVER"); s != "" {
		return s
	}
	return "http://localhost:5057"
}

// NewRootCmd creates the root cobra command for the schedopt CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedopt",
		Short: "schedopt — contention-aware schedule optimization",
		Long:  "schedopt orders task graphs by precedence and priority, then anneals write contention out of the schedule.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
			api = client.New(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "schedopt server URL (or SCHEDOPT_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newOptimizeCmd(),
		newCompareCmd(),
		newHealthCmd(),
	)

	return root
}
