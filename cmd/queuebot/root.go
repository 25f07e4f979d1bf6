package main

import (
	"github.com/spf13/cobra"

	"github.com/jose-valero/lcu-queue-bot/internal/infra/config"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "queuebot",
		Short: "Auto-accept League of Legends / TFT ready checks",
		Long: `queuebot watches the local League client and accepts every ready check
for the queues you allow, with a desktop notification and an optional
Discord webhook ping.

Examples:
  queuebot                                  # run in the foreground
  queuebot config set --queues 1100,1160    # only TFT Ranked and Double Up
  queuebot config set --queues all          # every queue again
  queuebot pause                            # talk to the running instance`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, cfg)
		},
	}

	root.AddCommand(
		newRunCmd(cfg),
		newConfigCmd(cfg),
		newQueuesCmd(cfg),
		newTestWebhookCmd(cfg),
	)
	root.AddCommand(newControlCmds(cfg)...)
	return root
}

func newRunCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch the League client and auto-accept ready checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, cfg)
		},
	}
}
