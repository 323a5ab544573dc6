package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, overdue and upcoming counts",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.Store.Statistics()
			t := ui.Current()
			lines := statsHeader(st)
			lines = append(lines, "",
				fmt.Sprintf("%-10s %d", "total", st.Total),
				fmt.Sprintf("%-10s %d", "completed", st.Completed),
				fmt.Sprintf("%-10s %d", "pending", st.Pending()),
				t.Error.Render(fmt.Sprintf("%-10s %d", "overdue", st.Overdue)),
				fmt.Sprintf("%-10s %d", "upcoming", st.Upcoming),
			)
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func newTagsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, tag := range a.Store.AllTags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newColorCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "color [bg|card] [name]",
		Short: "Show or set the background and card colours",
		Example: `  todo color
  todo color bg mint
  todo color card rose`,
		Args: usageArgs(cobra.RangeArgs(0, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] != "bg" && args[0] != "card" {
				return usageErr("color: want bg or card, got %q", args[0])
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			out := cmd.OutOrStdout()

			if len(args) < 2 {
				show := func(label string, current model.Swatch, palette []model.Swatch) {
					names := make([]string, len(palette))
					for i, s := range palette {
						names[i] = s.Name
						if s.Name == current.Name {
							names[i] = "[" + s.Name + "]"
						}
					}
					fmt.Fprintf(out, "%-5s %s\n", label, strings.Join(names, " "))
				}
				if len(args) == 0 || args[0] == "bg" {
					show("bg", a.Store.BackgroundColor(), model.BackgroundPalette)
				}
				if len(args) == 0 || args[0] == "card" {
					show("card", a.Store.CardColor(), model.CardPalette)
				}
				return nil
			}

			if args[0] == "bg" {
				err = a.Store.SetBackgroundColor(args[1])
			} else {
				err = a.Store.SetCardColor(args[1])
			}
			if errors.Is(err, todo.ErrUnknownSwatch) {
				return usageErr("%v", err)
			}
			if err != nil {
				return failure("color", err)
			}
			ui.OK(out, args[0]+" colour set to "+args[1])
			return nil
		},
	}
}

func newTUICommand(opts *RootOptions) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.query()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("all") {
				q.ShowCompleted = true
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := tui.Run(a.Store, q); err != nil {
				return failure("tui", err)
			}
			return nil
		},
	}
	view.register(cmd)
	return cmd
}
