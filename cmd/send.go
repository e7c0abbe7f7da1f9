package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/guilhermegouw/pomo/internal/bridge"
	"github.com/guilhermegouw/pomo/internal/config"
	"github.com/guilhermegouw/pomo/internal/host"
	"github.com/guilhermegouw/pomo/internal/protocol"
	"github.com/guilhermegouw/pomo/internal/pubsub"
)

const sendTimeout = 10 * time.Second

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <json>",
		Short: "Run one command envelope against the host",
		Long: `Decode a command envelope, run it against the terminal host and print
the reply as JSON. Commands without a reply print nothing.

  pomo send '{"name":"get-init-data"}'
  pomo send '{"name":"play-sound","payload":{"sound":"audio-work"}}'`,
		Args: cobra.ExactArgs(1),
		RunE: runSend,
	}
	cmd.Flags().String("file", "", "Use this config file instead of the global one")
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("getting file flag: %w", err)
	}
	if path == "" {
		path = config.ConfigPath()
	}

	var opts []bridge.DispatcherOption
	store, closeJournal := openJournal(cmd.Context())
	defer closeJournal()
	if store != nil {
		opts = append(opts, bridge.WithJournal(store))
	}
	return sendCommand(cmd.Context(), path, []byte(args[0]), cmd.OutOrStdout(), opts...)
}

// sendCommand decodes raw, dispatches it against a host backed by
// configPath and writes the reply to w. A propagated failure is returned.
func sendCommand(ctx context.Context, configPath string, raw []byte, w io.Writer, opts ...bridge.DispatcherOption) error {
	command, err := protocol.DecodeJSON(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := pubsub.NewHub()
	defer hub.Shutdown()

	local, err := host.NewLocal(hub, configPath,
		host.WithNotifier(host.NewTermNotifier(os.Stderr)),
		host.WithQuit(cancel),
	)
	if err != nil {
		return fmt.Errorf("starting host: %w", err)
	}

	replies := &replyCollector{}
	opts = append([]bridge.DispatcherOption{bridge.WithCallTimeout(sendTimeout)}, opts...)
	bridge.NewDispatcher(local, replies, opts...).Dispatch(ctx, command)

	return replies.write(w)
}

// replyCollector is the Sender for a single dispatch.
type replyCollector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *replyCollector) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *replyCollector) write(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range r.msgs {
		reply, ok := msg.(bridge.ReplyMsg)
		if !ok {
			continue
		}
		if failed, ok := reply.Payload.(bridge.CommandFailedMsg); ok {
			return fmt.Errorf("%s: %w", failed.Command, failed.Err)
		}
		data, err := json.MarshalIndent(reply.Payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s reply: %w", reply.Command, err)
		}
		fmt.Fprintln(w, string(data))
	}
	return nil
}
