package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/notify"
	"github.com/idilsaglam/todo/internal/ui"
)

func newRemindCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage due-date reminders",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(cmd.ErrOrStderr())
			_ = cmd.Help()
			return usageErr("missing subcommand")
		},
	}
	cmd.AddCommand(
		newRemindAuthCommand(opts),
		newRemindStatusCommand(opts),
		newRemindPendingCommand(opts),
		newRemindWatchCommand(opts),
	)
	return cmd
}

func newRemindAuthCommand(opts *RootOptions) *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Ask for permission to show reminders",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if revoke {
				if err := notify.RevokeGrant(a.Config.AuthPath); err != nil {
					return failure("revoke", err)
				}
				a.Scheduler.RefreshAuthorization()
				ui.OK(cmd.OutOrStdout(), "reminder permission reset")
				return nil
			}

			if !a.Scheduler.RequestAuthorization(cmd.Context()) {
				ui.Fail(cmd.OutOrStdout(), "reminders not allowed")
				return nil
			}
			// Items added while unauthorized had their reminders skipped.
			for _, it := range a.Store.Items() {
				a.Scheduler.Resync(it)
			}
			ui.OK(cmd.OutOrStdout(), "reminders allowed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "forget the recorded answer")
	return cmd
}

func newRemindStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the reminder permission state",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(cmd.OutOrStdout(), a.Center.AuthorizationStatus())
			return nil
		},
	}
}

func newRemindPendingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List scheduled reminders, soonest first",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			reqs, err := a.Center.Pending()
			if err != nil {
				return failure("pending", err)
			}
			out := cmd.OutOrStdout()
			if len(reqs) == 0 {
				fmt.Fprintln(out, ui.Current().Muted.Render("no pending reminders"))
				return nil
			}
			loc := opts.location()
			for _, r := range reqs {
				fmt.Fprintf(out, "%s  %s\n", formatDue(r.Trigger.Time(loc), loc), r.Body)
			}
			return nil
		},
	}
}

func newRemindWatchCommand(opts *RootOptions) *cobra.Command {
	var (
		once  bool
		every time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Deliver reminders as they come due",
		Long: `Polls the pending reminders and prints each one when its minute
arrives. Runs until interrupted unless --once is given.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			deliver := func(r notify.Request) {
				fmt.Fprintf(out, "\a%s %s: %s\n", ui.Current().Accent.Render("⏰"), r.Title, r.Body)
				a.Log.Info("reminder delivered", "id", r.ID)
			}

			if once {
				due, err := a.Center.DeliverDue(opts.now())
				for _, r := range due {
					deliver(r)
				}
				if err != nil {
					return failure("deliver", err)
				}
				return nil
			}

			if every <= 0 {
				every = a.Config.Reminders.Poll.Duration
			}
			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.Log.Info("watching reminders", "every", every)
			return a.Center.Run(ctx, every, deliver)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "deliver what is due now and exit")
	cmd.Flags().DurationVar(&every, "every", 0, "poll interval (default from config)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
