package root

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
	"github.com/docker/threadview/pkg/client"
	"github.com/docker/threadview/pkg/history"
	"github.com/docker/threadview/pkg/userconfig"
)

type connectionFlags struct {
	server    string
	token     string
	timeout   time.Duration
	cacheSize int
}

func (f *connectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.server, "server", "s", "", "Thread backend base URL (default from ~/.threadview/config.yaml)")
	cmd.Flags().StringVar(&f.token, "token", "", "Bearer token for the thread backend")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Per-request timeout")
	cmd.Flags().IntVar(&f.cacheSize, "cache-size", 0, "Run cache size")
}

// newService builds a transcript service from flags layered over the user
// config file.
func (f *connectionFlags) newService(warn history.WarnFunc) (*history.Service, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return nil, err
	}

	server := f.server
	if server == "" {
		server = cfg.Server
	}
	if server == "" {
		return nil, errors.New("no server configured, pass --server or set it in the config file")
	}

	var opts []client.Option
	if token := firstNonEmpty(f.token, cfg.Token); token != "" {
		opts = append(opts, client.WithToken(token))
	}
	if timeout := f.timeout; timeout > 0 {
		opts = append(opts, client.WithTimeout(timeout))
	} else if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.Timeout))
	}

	c, err := client.New(server, opts...)
	if err != nil {
		return nil, err
	}

	cacheSize := f.cacheSize
	if cacheSize == 0 {
		cacheSize = cfg.CacheSize
	}

	serviceOpts := []history.Option{history.WithCacheSize(cacheSize)}
	if warn != nil {
		serviceOpts = append(serviceOpts, history.WithWarnFunc(warn))
	}

	return history.NewService(c, serviceOpts...), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newHistoryCmd() *cobra.Command {
	var flags connectionFlags
	var limit int
	var before string

	cmd := &cobra.Command{
		Use:   "history <room> <thread>",
		Short: "Print the reconstructed transcript for a thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			warn := func(threadID, runID, reason string) {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "warning: skipped run %s in thread %s: %s\n", runID, threadID, reason)
			}

			service, err := flags.newService(warn)
			if err != nil {
				return err
			}
			defer service.Close()

			transcript, err := service.GetThreadHistory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			messages := transcript.Messages
			if limit > 0 || before != "" {
				var meta *api.PaginationMetadata
				messages, meta, err = api.PaginateMessages(messages, api.PaginationParams{Limit: limit, Before: before})
				if err != nil {
					return err
				}
				if meta.PrevCursor != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "older messages available, use --before %s\n", meta.PrevCursor)
				}
			}

			for _, message := range messages {
				printMessage(out, message)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many of the most recent messages")
	cmd.Flags().StringVar(&before, "before", "", "Show messages before this cursor")
	return cmd
}

func printMessage(out io.Writer, message chat.Message) {
	switch msg := message.(type) {
	case *chat.TextMessage:
		roleColor(msg.Role).Fprintf(out, "%s: ", msg.Role)
		fmt.Fprintln(out, msg.Content)
	case *chat.ToolCallMessage:
		for _, call := range msg.ToolCalls {
			color.New(color.FgYellow).Fprintf(out, "tool %s(%s) [%s]", call.Name, call.Arguments, call.Status)
			if call.Result != "" {
				fmt.Fprintf(out, " -> %s", call.Result)
			}
			fmt.Fprintln(out)
		}
	case *chat.WidgetMessage:
		color.New(color.FgMagenta).Fprintf(out, "widget: %s\n", msg.Widget)
	case *chat.ErrorMessage:
		color.New(color.FgRed).Fprintf(out, "error: %s\n", msg.Content)
	case *chat.LoadingMessage:
		// Transient, nothing to print.
	}
}

func roleColor(role chat.MessageRole) *color.Color {
	switch role {
	case chat.MessageRoleUser:
		return color.New(color.FgCyan, color.Bold)
	case chat.MessageRoleSystem:
		return color.New(color.Faint)
	default:
		return color.New(color.FgGreen)
	}
}
