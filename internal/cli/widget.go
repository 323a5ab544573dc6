package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/widget"
)

// NewWidgetCommand creates the todo-widget command. It only ever reads
// the shared location.
func NewWidgetCommand(opts *RootOptions) *cobra.Command {
	var (
		family  string
		refresh time.Duration
		once    bool
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "todo-widget",
		Short: "Home-screen summary of incomplete to-dos",
		Long: `todo-widget shows the first incomplete items written by todo. It
re-reads the shared location on every refresh and never writes to it.`,
		Example: `  todo-widget --family large
  todo-widget --once --plain`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("family") {
				family = cfg.Widget.Family
			}
			f, err := widget.ParseFamily(family)
			if err != nil {
				return usageErr("%v", err)
			}
			if refresh <= 0 {
				refresh = cfg.Widget.Refresh.Duration
			}

			logger := app.NewLogger(cmd.ErrOrStderr(), cfg).WithPrefix("tada/widget")
			src := widget.OpenShared(cfg.SharedPath)
			defer src.Close()
			p := &widget.Provider{Source: src, Now: opts.Now, Logger: logger}

			if once {
				s := widget.Summarize(p.Snapshot(), f)
				if plain {
					fmt.Fprint(cmd.OutOrStdout(), widget.RenderText(s, f, opts.location()))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), widget.Render(s, f, opts.location()))
				}
				return nil
			}

			logger.Debug("widget started", "family", f, "refresh", refresh, "shared", cfg.SharedPath)
			prog := tea.NewProgram(widget.NewModel(p, f, refresh),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := prog.Run(); err != nil {
				return failure("widget", err)
			}
			return nil
		},
	}
	opts.addPersistentFlags(cmd)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: "flags", Err: err}
	})
	cmd.Flags().StringVarP(&family, "family", "f", "medium", "small|medium|large")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "re-read interval (default from config)")
	cmd.Flags().BoolVar(&once, "once", false, "print one snapshot and exit")
	cmd.Flags().BoolVar(&plain, "plain", false, "with --once, print without styling")
	return cmd
}
