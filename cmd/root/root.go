package root

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	debugMode bool
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "threadview",
		Short: "threadview - chat thread transcript viewer",
		Long:  "threadview reconstructs chat thread transcripts from a run-based thread backend",
		Example: `  threadview history room-1 thread-42
  threadview export room-1 thread-42`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: func() slog.Level {
					if flags.debugMode {
						return slog.LevelDebug
					}
					return slog.LevelWarn
				}(),
			})))
		},
		// If no subcommand is specified, show help
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute(ctx context.Context, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
