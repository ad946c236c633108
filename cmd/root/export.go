package root

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docker/threadview/pkg/protocol"
)

func newExportCmd() *cobra.Command {
	var flags connectionFlags

	cmd := &cobra.Command{
		Use:   "export <room> <thread>",
		Short: "Print a thread's transcript as agent-service wire messages",
		Long:  "Reconstructs the transcript and converts it to the JSON message shapes the downstream agent service consumes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := flags.newService(nil)
			if err != nil {
				return err
			}
			defer service.Close()

			messages, err := service.GetThreadMessages(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			outbound := protocol.ConvertMessages(messages)
			buf, err := json.MarshalIndent(outbound, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling messages: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(buf))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
