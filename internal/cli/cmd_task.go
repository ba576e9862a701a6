package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/kanban-api/internal/board"
)

// newTaskCmd creates the task command group
func newTaskCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add, rename, move or remove tasks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <column-id> <title>",
		Short: "Add a task to a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.AddTask{Title: strings.Join(args[1:], " "), ColumnID: columnID})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <task-id> <title>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.RenameTask{ID: id, Title: strings.Join(args[1:], " ")})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <task-id> <column-id>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			columnID, err := parseID(args[1], "column")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.MoveTask{ID: id, ColumnID: columnID})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				return s.apply(cmd.Context(), board.DeleteTask{ID: id})
			})
		},
	})

	return cmd
}
