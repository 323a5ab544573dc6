package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

func newAddCommand(opts *RootOptions) *cobra.Command {
	var (
		due, notes, priority, image string
		tags                        []string
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usageErr("add: empty title")
			}
			var itemOpts []model.Option
			if due != "" {
				t, err := parseDue(due, opts.now(), opts.location())
				if err != nil {
					return err
				}
				itemOpts = append(itemOpts, model.WithDueDate(t))
			}
			if cmd.Flags().Changed("notes") {
				itemOpts = append(itemOpts, model.WithNotes(notes))
			}
			if len(tags) > 0 {
				itemOpts = append(itemOpts, model.WithTags(tags...))
			}
			if priority != "" {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return usageErr("%v", err)
				}
				itemOpts = append(itemOpts, model.WithPriority(p))
			}
			if image != "" {
				b, err := os.ReadFile(image)
				if err != nil {
					return failure("image", err)
				}
				itemOpts = append(itemOpts, model.WithImage(b))
			}

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			it, err := a.Store.Add(title, itemOpts...)
			if errors.Is(err, todo.ErrEmptyTitle) {
				return usageErr("add: empty title")
			}
			if err != nil {
				return failure("add", err)
			}
			msg := "added"
			if it.DueDate != nil && !a.Scheduler.Authorized() {
				msg += " (reminders are off; run `todo remind auth`)"
			}
			ui.OK(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&due, "due", "", "due date: YYYY-MM-DD [HH:MM], today|tomorrow [HH:MM], +duration")
	f.StringVar(&notes, "notes", "", "free-form notes")
	f.StringSliceVar(&tags, "tag", nil, "tag (repeatable or comma separated)")
	f.StringVarP(&priority, "priority", "p", "", "low|medium|high (default medium)")
	f.StringVar(&image, "image", "", "attach an image file")
	return cmd
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.query()
			if err != nil {
				return err
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			items := a.Store.FilteredAndSorted(q)
			now := opts.now()
			t := ui.Current()

			lines := statsHeader(a.Store.Statistics())
			lines = append(lines, "")
			if len(items) == 0 {
				lines = append(lines, t.Muted.Render("no items"))
			}
			for i, it := range items {
				lines = append(lines, itemLine(i+1, it, now, opts.location()))
			}
			lines = append(lines, "")
			lines = append(lines, t.Muted.Render("Tip: add with `todo add <title...>`"))
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "done <index...>",
		Short: "Toggle done for items at 1-based indexes",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.query()
			if err != nil {
				return err
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			items := a.Store.FilteredAndSorted(q)
			pos, err := positions(args, len(items))
			if err != nil {
				return err
			}
			for _, p := range pos {
				a.Store.Toggle(items[p].ID)
			}
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:     "rm <index...>",
		Aliases: []string{"remove"},
		Short:   "Remove items at 1-based indexes",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.query()
			if err != nil {
				return err
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			pos, err := positions(args, len(a.Store.FilteredAndSorted(q)))
			if err != nil {
				return err
			}
			n := a.Store.Delete(q, pos...)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %d", n))
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	var (
		view                             viewFlags
		title, notes, due, priority      string
		image                            string
		tags                             []string
		clearNotes, clearDue, clearImage bool
	)
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit the item at a 1-based index; unset flags keep their value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := view.query()
			if err != nil {
				return err
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			items := a.Store.FilteredAndSorted(q)
			pos, err := positions(args, len(items))
			if err != nil {
				return err
			}
			it := items[pos[0]]
			u := todo.UpdateFrom(it)

			f := cmd.Flags()
			if f.Changed("title") {
				if strings.TrimSpace(title) == "" {
					return usageErr("edit: empty title")
				}
				u.Title = title
			}
			switch {
			case clearNotes:
				u.Notes = nil
			case f.Changed("notes"):
				u.Notes = &notes
			}
			switch {
			case clearDue:
				u.DueDate = nil
			case f.Changed("due"):
				t, err := parseDue(due, opts.now(), opts.location())
				if err != nil {
					return err
				}
				u.DueDate = &t
			}
			switch {
			case clearImage:
				u.Image = nil
			case f.Changed("image"):
				b, err := os.ReadFile(image)
				if err != nil {
					return failure("image", err)
				}
				u.Image = b
			}
			if f.Changed("set-tags") {
				u.Tags = append([]string{}, tags...)
			}
			if f.Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return usageErr("%v", err)
				}
				u.Priority = &p
			}

			if !a.Store.Update(it.ID, u) {
				return failure("edit", errors.New("item vanished"))
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	view.register(cmd)
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVar(&notes, "notes", "", "replace notes")
	f.BoolVar(&clearNotes, "clear-notes", false, "remove notes")
	f.StringVar(&due, "due", "", "new due date")
	f.BoolVar(&clearDue, "clear-due", false, "remove the due date and its reminder")
	f.StringVar(&image, "image", "", "replace the attached image")
	f.BoolVar(&clearImage, "clear-image", false, "remove the attached image")
	f.StringSliceVar(&tags, "set-tags", nil, "replace all tags")
	f.StringVarP(&priority, "priority", "p", "", "low|medium|high")
	return cmd
}
