package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jose-valero/lcu-queue-bot/internal/adapters/console"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/discord"
	"github.com/jose-valero/lcu-queue-bot/internal/adapters/httpcontrol"
	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
	"github.com/jose-valero/lcu-queue-bot/internal/domain"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/config"
	"github.com/jose-valero/lcu-queue-bot/internal/infra/storage"
)

// Config commands
func newConfigCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, cfg)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, cfg)
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print where the settings file lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.SettingsPath)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update one or more settings",
		Long: `Update one or more settings. A running instance picks the change up
without restarting.

  --queues all      accept every queue
  --queues 1100,420 accept only TFT Ranked and Ranked Solo/Duo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, cfg)
		},
	}
	set.Flags().String("webhook-url", "", "Discord webhook URL (empty disables it)")
	set.Flags().String("user-id", "", "Discord user id to mention (empty disables the mention)")
	set.Flags().Bool("desktop-notifications", true, "show a desktop notification on queue pop")
	set.Flags().String("queues", "", `comma separated queue ids, or "all"`)

	cmd.AddCommand(show, path, set)
	return cmd
}

func runConfigShow(cmd *cobra.Command, cfg config.Config) error {
	st, err := storage.NewSettingsRepo(cfg.SettingsPath).Peek(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.Panel("Settings", service.Describe(st)))
	return nil
}

func runConfigSet(cmd *cobra.Command, cfg config.Config) error {
	var patch service.PolicyPatch
	flags := cmd.Flags()

	if flags.Changed("webhook-url") {
		v, _ := flags.GetString("webhook-url")
		if v = strings.TrimSpace(v); v != "" {
			u, err := url.Parse(v)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("%q is not a valid webhook URL", v)
			}
			if _, _, ok := discord.ParseWebhookURL(v); !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠️ not a Discord webhook URL, posting anyway")
			}
		}
		patch.WebhookURL = &v
	}
	if flags.Changed("user-id") {
		v, _ := flags.GetString("user-id")
		patch.UserID = &v
	}
	if flags.Changed("desktop-notifications") {
		v, _ := flags.GetBool("desktop-notifications")
		patch.DesktopNotifications = &v
	}
	if flags.Changed("queues") {
		v, _ := flags.GetString("queues")
		ids, err := parseQueueIDs(v)
		if err != nil {
			return err
		}
		patch.AllowedQueueIDs = &ids
	}
	if patch.Empty() {
		return errors.New("nothing to change (see queuebot config set --help)")
	}

	svc := service.NewPolicyService(storage.NewSettingsRepo(cfg.SettingsPath))
	text, err := svc.Update(cmd.Context(), patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.Panel("Settings saved", text))
	return nil
}

// parseQueueIDs: "" o "all" = todas; ids repetidos se colapsan. Un id que no
// está en el catálogo se acepta igual (colas nuevas del cliente).
func parseQueueIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return []int{}, nil
	}
	seen := map[int]bool{}
	out := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid queue id %q", part)
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Queue catalog
func newQueuesCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "queues",
		Short: "List known queues and which ones are allowed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.NewSettingsRepo(cfg.SettingsPath).Peek(cmd.Context())
			if err != nil {
				return err
			}
			entries := service.NewQueueService(nil).Catalog(st)
			fmt.Fprintln(cmd.OutOrStdout(), console.QueueList(entries, st.AcceptsAll()))
			return nil
		},
	}
}

func newTestWebhookCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-webhook",
		Short: "Send a sample queue-pop message to the configured webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.NewSettingsRepo(cfg.SettingsPath).Peek(cmd.Context())
			if err != nil {
				return err
			}
			hookURL := st.WebhookURL
			if flag, _ := cmd.Flags().GetString("url"); flag != "" {
				hookURL = flag
			}
			if hookURL == "" {
				return errors.New("no webhook configured (queuebot config set --webhook-url ...)")
			}
			mode, _ := cmd.Flags().GetInt("queue")

			hook, err := discord.NewWebhook()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := hook.QueuePopped(ctx, hookURL, st.MentionUserID, domain.QueueName(mode)); err != nil {
				return fmt.Errorf("webhook: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ webhook sent")
			return nil
		},
	}
	cmd.Flags().String("url", "", "override the configured webhook URL")
	cmd.Flags().Int("queue", 1100, "queue id used for the sample message")
	return cmd
}

// Control commands (instancia corriendo)
func newControlCmds(cfg config.Config) []*cobra.Command {
	client := func() *httpcontrol.Client { return httpcontrol.NewClient(cfg.ControlAddr, cfg.ControlToken) }

	printStatus := func(cmd *cobra.Command, st httpcontrol.StatusResponse) {
		fmt.Fprintln(cmd.OutOrStdout(), console.StatusPanel(st.Version, st.Connected, st.Paused))
	}
	action := func(use, short string, call func(*httpcontrol.Client, context.Context) (httpcontrol.StatusResponse, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := call(client(), cmd.Context())
				if err != nil {
					return err
				}
				printStatus(cmd, st)
				return nil
			},
		}
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client().Stop(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🛑 stop requested")
			return nil
		},
	}

	return []*cobra.Command{
		action("status", "Show the running instance status", (*httpcontrol.Client).Status),
		action("pause", "Pause auto-accept", (*httpcontrol.Client).Pause),
		action("resume", "Resume auto-accept", (*httpcontrol.Client).Resume),
		action("toggle", "Toggle pause", (*httpcontrol.Client).Toggle),
		stop,
	}
}
