// Package cli holds the cobra command trees of the todo and todo-widget
// binaries.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/notify"
	"github.com/idilsaglam/todo/internal/ui"
)

// RootOptions holds global flags and process hooks for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	Theme      string

	// Now overrides the clock; tests only.
	Now func() time.Time
	// Location overrides time.Local for due dates and reminders.
	Location *time.Location

	cfg *config.Config
}

func (o *RootOptions) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *RootOptions) addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "config file (default ~/.tada/config.toml)")
	cmd.PersistentFlags().StringVar(&o.DataDir, "data-dir", "", "directory holding the to-do data")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "", "debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&o.Theme, "theme", "classic", "output theme ("+strings.Join(ui.Themes, "|")+")")
}

// load resolves the configuration once per invocation.
func (o *RootOptions) load() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, failure("config", err)
	}
	if o.DataDir != "" {
		if err := cfg.SetDataDir(o.DataDir); err != nil {
			return nil, failure("config", err)
		}
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	ui.SetTheme(o.Theme)
	o.cfg = cfg
	return cfg, nil
}

// open builds the main-process App for cmd. The caller must Close it.
func (o *RootOptions) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(cfg, app.Options{
		LogOutput: cmd.ErrOrStderr(),
		Prompt:    stdinPrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
		Location:  o.Location,
		Now:       o.Now,
	})
	if err != nil {
		return nil, failure("open", err)
	}
	return a, nil
}

// stdinPrompt asks a yes/no question on the terminal.
func stdinPrompt(in io.Reader, out io.Writer) notify.Prompt {
	return func(ctx context.Context) (bool, error) {
		fmt.Fprint(out, "Allow to-do reminders? [y/N] ")
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// NewRootCommand creates the todo command tree.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny to-do list with reminders",
		Long: `todo keeps a to-do list on disk, schedules reminders for due items,
and publishes the list for the todo-widget summary.

Positions are 1-based and refer to the list printed by "todo ls" with the
same view flags.`,
		Example: `  todo add "Buy milk"
  todo add "Pay rent" --due "2026-11-01 09:00" --priority high --tag home
  todo ls --sort due
  todo done 2
  todo rm 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErr("unknown subcommand: %s", args[0])
			}
			cmd.SetOut(cmd.ErrOrStderr())
			_ = cmd.Help()
			return usageErr("missing subcommand")
		},
		Args: cobra.ArbitraryArgs,
	}
	opts.addPersistentFlags(cmd)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: "flags", Err: err}
	})

	cmd.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newDoneCommand(opts),
		newEditCommand(opts),
		newRemoveCommand(opts),
		newStatsCommand(opts),
		newTagsCommand(opts),
		newColorCommand(opts),
		newRemindCommand(opts),
		newTUICommand(opts),
	)
	return cmd
}

// Execute runs cmd with args and reports failures the way the todo CLI
// always has: one line on stderr and an exit code.
func Execute(cmd *cobra.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(errOut, err.Error())
	return ExitCode(err)
}

// usageArgs turns cobra argument validation errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: "usage: " + cmd.UseLine(), Err: err}
		}
		return nil
	}
}
